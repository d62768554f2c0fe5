package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/darshan87986/CommunityHub/models"
)

func organizer() models.User {
	return models.User{ID: "org-1", Name: "John Organizer", Role: models.RoleOrganizer}
}

func attendee(n int) models.User {
	return models.User{
		ID:   fmt.Sprintf("user-%d", n),
		Name: fmt.Sprintf("Gopher %d", n),
		Role: models.RoleAttendee,
	}
}

func TestConcurrentJoinsPaidEvent(t *testing.T) {
	st := New(Options{})
	ctx := context.Background()

	totalSpots := 5
	ev, err := st.createEventAs(ctx, organizer(), EventDraft{
		Title:       "The Big GopherCon",
		Date:        "2026-10-01",
		StartTime:   "09:00",
		EndTime:     "18:00",
		Category:    "Technology",
		IsFree:      false,
		TicketPrice: 25,
		TotalSpots:  totalSpots,
	})
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	numRequests := 100
	var successCount int32
	var soldOutCount int32
	var errorCount int32

	var wg sync.WaitGroup
	wg.Add(numRequests)

	for i := 0; i < numRequests; i++ {
		go func(requestID int) {
			defer wg.Done()

			_, err := st.joinEventAs(ctx, attendee(requestID), ev.ID)
			if err == nil {
				atomic.AddInt32(&successCount, 1)
			} else if errors.Is(err, ErrSoldOut) {
				atomic.AddInt32(&soldOutCount, 1)
			} else {
				t.Logf("Unexpected error for request %d: %v", requestID, err)
				atomic.AddInt32(&errorCount, 1)
			}
		}(i)
	}
	wg.Wait()

	if successCount != int32(totalSpots) {
		t.Errorf("Expected exactly %d successes, but got %d", totalSpots, successCount)
	}
	if soldOutCount != int32(numRequests-totalSpots) {
		t.Errorf("Expected exactly %d sold out errors, but got %d", numRequests-totalSpots, soldOutCount)
	}
	if errorCount != 0 {
		t.Errorf("Expected 0 unexpected errors, but got %d", errorCount)
	}

	got, err := st.Event(ctx, ev.ID)
	if err != nil {
		t.Fatalf("Failed to read event back: %v", err)
	}
	if got.SpotsRemaining != 0 {
		t.Errorf("Expected 0 spots remaining, but got %d", got.SpotsRemaining)
	}
	if len(got.Attendees) != totalSpots {
		t.Errorf("Expected exactly %d attendees, but got %d", totalSpots, len(got.Attendees))
	}
}

func TestConcurrentVolunteersSingleSpot(t *testing.T) {
	ctx := context.Background()

	// Re-run the two-way race; a lost update would show up as SpotsFilled == 2
	// or both users recorded.
	for i := 0; i < 50; i++ {
		st := New(Options{})
		ev, err := st.createEventAs(ctx, organizer(), EventDraft{
			Title:          "Charity Gala",
			Date:           "2026-11-20",
			StartTime:      "19:00",
			EndTime:        "23:00",
			Category:       "Charity",
			IsFree:         true,
			VolunteerRoles: []models.VolunteerRole{{Title: "Registration Desk", SpotsTotal: 1}},
		})
		if err != nil {
			t.Fatalf("Failed to create test event: %v", err)
		}
		roleID := ev.VolunteerRoles[0].ID

		var successCount, fullCount int32
		var wg sync.WaitGroup
		wg.Add(2)
		for u := 0; u < 2; u++ {
			go func(userID int) {
				defer wg.Done()
				_, err := st.volunteerForRoleAs(ctx, attendee(userID), ev.ID, roleID)
				switch {
				case err == nil:
					atomic.AddInt32(&successCount, 1)
				case errors.Is(err, ErrRoleFull):
					atomic.AddInt32(&fullCount, 1)
				default:
					t.Errorf("Unexpected error: %v", err)
				}
			}(u)
		}
		wg.Wait()

		if successCount != 1 || fullCount != 1 {
			t.Fatalf("Expected exactly one winner, got %d successes and %d role-full errors", successCount, fullCount)
		}

		got, err := st.Event(ctx, ev.ID)
		if err != nil {
			t.Fatalf("Failed to read event back: %v", err)
		}
		if got.VolunteerRoles[0].SpotsFilled != 1 {
			t.Fatalf("Expected SpotsFilled == 1, got %d", got.VolunteerRoles[0].SpotsFilled)
		}
		if len(got.Volunteers[roleID]) != 1 {
			t.Fatalf("Expected one recorded volunteer, got %d", len(got.Volunteers[roleID]))
		}
	}
}

func TestConcurrentMixedMutationsKeepInvariants(t *testing.T) {
	st := New(Options{})
	ctx := context.Background()

	ev, err := st.createEventAs(ctx, organizer(), EventDraft{
		Title:       "Cultural Festival",
		Date:        "2026-12-05",
		StartTime:   "12:00",
		EndTime:     "20:00",
		Category:    "Cultural",
		IsFree:      false,
		TicketPrice: 5,
		TotalSpots:  10,
		VolunteerRoles: []models.VolunteerRole{
			{Title: "Food Service", SpotsTotal: 3},
			{Title: "Clean-up Crew", SpotsTotal: 4},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := attendee(n)
			st.joinEventAs(ctx, user, ev.ID)
			st.volunteerForRoleAs(ctx, user, ev.ID, ev.VolunteerRoles[n%2].ID)
			st.addCommentAs(ctx, user, ev.ID, "see you there")
		}(i)
	}
	wg.Wait()

	got, err := st.Event(ctx, ev.ID)
	if err != nil {
		t.Fatalf("Failed to read event back: %v", err)
	}
	if got.SpotsRemaining < 0 || got.SpotsRemaining > got.TotalSpots {
		t.Errorf("SpotsRemaining out of range: %d of %d", got.SpotsRemaining, got.TotalSpots)
	}
	if len(got.Attendees) != got.TotalSpots-got.SpotsRemaining {
		t.Errorf("Attendee count %d inconsistent with spots sold %d", len(got.Attendees), got.TotalSpots-got.SpotsRemaining)
	}
	for _, role := range got.VolunteerRoles {
		if role.SpotsFilled < 0 || role.SpotsFilled > role.SpotsTotal {
			t.Errorf("Role %q filled out of range: %d of %d", role.Title, role.SpotsFilled, role.SpotsTotal)
		}
		if len(got.Volunteers[role.ID]) != role.SpotsFilled {
			t.Errorf("Role %q volunteer list length %d != SpotsFilled %d", role.Title, len(got.Volunteers[role.ID]), role.SpotsFilled)
		}
	}
	if len(got.Comments) != 40 {
		t.Errorf("Expected 40 comments, got %d", len(got.Comments))
	}
}
