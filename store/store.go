package store

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darshan87986/CommunityHub/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Store is the single authority over users, events, comments and volunteer
// roles for the running process. The HTTP layer only dispatches intents to
// it and reads the resulting state.
//
// Mutations against one event are linearized by a per-event lock, so
// capacity checks and counter updates are applied as a unit. Operations
// against different events proceed independently. Each operation captures
// the session user once at entry; a login racing an in-flight mutation does
// not change whose intent is applied.
type Store struct {
	auth     Authenticator
	persist  Persistence
	sessions SessionRecords
	log      *log.Logger

	mu      sync.RWMutex
	events  map[string]*eventEntry
	order   []string // event ids, insertion-ordered
	session *AuthResult
}

type eventEntry struct {
	mu      sync.Mutex
	ev      models.Event
	deleted bool
}

type Options struct {
	Auth        Authenticator
	Persistence Persistence // optional
	Sessions    SessionRecords
	Logger      *log.Logger
}

func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		auth:     opts.Auth,
		persist:  opts.Persistence,
		sessions: opts.Sessions,
		log:      logger,
		events:   make(map[string]*eventEntry),
	}
}

// Start rehydrates events from the persistence port and the session from the
// persisted session record. Called once before the store is handed to
// callers.
func (s *Store) Start(ctx context.Context) error {
	if s.persist != nil {
		events, err := s.persist.ListEvents(ctx)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		s.mu.Lock()
		for i := range events {
			ev := cloneEvent(&events[i])
			s.events[ev.ID] = &eventEntry{ev: ev}
			s.order = append(s.order, ev.ID)
		}
		s.mu.Unlock()
	}
	if s.sessions != nil {
		rec, ok, err := s.sessions.Load(ctx)
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if ok {
			s.mu.Lock()
			s.session = &AuthResult{Token: rec.Token, User: rec.User}
			s.mu.Unlock()
		}
	}
	return nil
}

// ---------------- Session ----------------

// Login delegates to the identity collaborator. On success the session is
// replaced and persisted; on failure it is left untouched and the
// collaborator's error is returned as-is.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	res, err := s.auth.Authenticate(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		return models.User{}, err
	}
	s.setSession(ctx, res)
	return res.User, nil
}

// Logout clears the session and the persisted record. Idempotent.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	if s.sessions != nil {
		if err := s.sessions.Clear(ctx); err != nil {
			s.log.Printf("store: clearing session record: %v", err)
		}
	}
	return nil
}

// Register creates a new account with the role exactly as given, logs it in
// and persists the session.
func (s *Store) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return models.User{}, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if role != models.RoleOrganizer && role != models.RoleAttendee {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	res, err := s.auth.Create(ctx, name, email, password, role)
	if err != nil {
		return models.User{}, err
	}
	s.setSession(ctx, res)
	return res.User, nil
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.User{}, false
	}
	return s.session.User, true
}

// Token returns the session's auth token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

func (s *Store) setSession(ctx context.Context, res AuthResult) {
	s.mu.Lock()
	s.session = &res
	s.mu.Unlock()
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, SessionRecord{Token: res.Token, User: res.User}); err != nil {
			s.log.Printf("store: persisting session record: %v", err)
		}
	}
}

// ---------------- Reads ----------------

// Events returns a copy of all events in insertion order.
func (s *Store) Events(ctx context.Context) []models.Event {
	s.mu.RLock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	s.mu.RUnlock()

	out := make([]models.Event, 0, len(ids))
	for _, id := range ids {
		if ev, err := s.Event(ctx, id); err == nil {
			out = append(out, ev)
		}
	}
	return out
}

// Event returns a copy of one event.
func (s *Store) Event(_ context.Context, id string) (models.Event, error) {
	entry, ok := s.entry(id)
	if !ok {
		return models.Event{}, ErrNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return models.Event{}, ErrNotFound
	}
	return cloneEvent(&entry.ev), nil
}

// ---------------- Mutations ----------------

// EventDraft is the organizer's input to CreateEvent. Role ids may be left
// empty; fresh ids are assigned.
type EventDraft struct {
	Title          string
	Description    string
	Image          string
	Date           string
	StartTime      string
	EndTime        string
	Location       models.EventLocation
	Category       string
	VolunteerRoles []models.VolunteerRole
	IsFree         bool
	TicketPrice    float64
	TotalSpots     int
}

// CreateEvent builds a complete event from the draft and publishes it
// atomically: readers never observe a volunteer role without its entry in
// the volunteers map.
func (s *Store) CreateEvent(ctx context.Context, draft EventDraft) (models.Event, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Event{}, ErrUnauthenticated
	}
	return s.createEventAs(ctx, user, draft)
}

func (s *Store) createEventAs(ctx context.Context, user models.User, draft EventDraft) (models.Event, error) {
	if user.Role != models.RoleOrganizer {
		return models.Event{}, ErrForbidden
	}
	if strings.TrimSpace(draft.Title) == "" {
		return models.Event{}, fmt.Errorf("%w: title is required", ErrInvalidDraft)
	}
	if !models.ValidCategory(draft.Category) {
		return models.Event{}, fmt.Errorf("%w: unknown category %q", ErrInvalidDraft, draft.Category)
	}
	if !draft.IsFree && draft.TotalSpots <= 0 {
		return models.Event{}, fmt.Errorf("%w: paid events need a positive spot count", ErrInvalidDraft)
	}

	ev := models.Event{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(draft.Title),
		Description:   draft.Description,
		Image:         draft.Image,
		Date:          draft.Date,
		StartTime:     draft.StartTime,
		EndTime:       draft.EndTime,
		Location:      draft.Location,
		OrganizerID:   user.ID,
		OrganizerName: user.Name,
		Category:      draft.Category,
		Attendees:     []string{},
		Volunteers:    map[string][]string{},
		Comments:      []models.Comment{},
		IsFree:        draft.IsFree,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if !draft.IsFree {
		ev.TicketPrice = draft.TicketPrice
		ev.TotalSpots = draft.TotalSpots
		ev.SpotsRemaining = draft.TotalSpots
	}
	for _, role := range draft.VolunteerRoles {
		if role.SpotsTotal <= 0 {
			return models.Event{}, fmt.Errorf("%w: role %q needs a positive spot count", ErrInvalidDraft, role.Title)
		}
		if role.ID == "" {
			role.ID = uuid.NewString()
		}
		role.SpotsFilled = 0
		ev.VolunteerRoles = append(ev.VolunteerRoles, role)
		ev.Volunteers[role.ID] = []string{}
	}

	s.mu.Lock()
	s.events[ev.ID] = &eventEntry{ev: cloneEvent(&ev)}
	s.order = append(s.order, ev.ID)
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.CreateEvent(ctx, ev); err != nil {
			s.log.Printf("store: persisting event %s: %v", ev.ID, err)
		}
	}
	return ev, nil
}

// AddComment appends a comment with the author snapshot taken from the
// session at call time. Insertion order is preserved.
func (s *Store) AddComment(ctx context.Context, eventID, content string) (models.Comment, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Comment{}, ErrUnauthenticated
	}
	return s.addCommentAs(ctx, user, eventID, content)
}

func (s *Store) addCommentAs(ctx context.Context, user models.User, eventID, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, ErrEmptyContent
	}
	entry, ok := s.entry(eventID)
	if !ok {
		return models.Comment{}, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return models.Comment{}, ErrNotFound
	}
	comment := models.Comment{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	entry.ev.Comments = append(entry.ev.Comments, comment)
	s.writeThrough(ctx, &entry.ev)
	return comment, nil
}

// JoinEvent adds the session user to the attendee list. For paid events the
// sold-out check and the spot decrement happen under the event lock, so
// concurrent joins cannot drive SpotsRemaining negative.
func (s *Store) JoinEvent(ctx context.Context, eventID string) (models.Event, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Event{}, ErrUnauthenticated
	}
	return s.joinEventAs(ctx, user, eventID)
}

func (s *Store) joinEventAs(ctx context.Context, user models.User, eventID string) (models.Event, error) {
	entry, ok := s.entry(eventID)
	if !ok {
		return models.Event{}, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return models.Event{}, ErrNotFound
	}
	if entry.ev.Attending(user.ID) {
		return models.Event{}, ErrAlreadyAttending
	}
	if !entry.ev.IsFree && entry.ev.SpotsRemaining <= 0 {
		return models.Event{}, ErrSoldOut
	}
	entry.ev.Attendees = append(entry.ev.Attendees, user.ID)
	if !entry.ev.IsFree {
		entry.ev.SpotsRemaining--
	}
	s.writeThrough(ctx, &entry.ev)
	return cloneEvent(&entry.ev), nil
}

// VolunteerForRole fills one spot of the role for the session user. The
// capacity check, the counter increment and the volunteer-list append are
// one unit under the event lock.
func (s *Store) VolunteerForRole(ctx context.Context, eventID, roleID string) (models.Event, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Event{}, ErrUnauthenticated
	}
	return s.volunteerForRoleAs(ctx, user, eventID, roleID)
}

func (s *Store) volunteerForRoleAs(ctx context.Context, user models.User, eventID, roleID string) (models.Event, error) {
	entry, ok := s.entry(eventID)
	if !ok {
		return models.Event{}, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return models.Event{}, ErrNotFound
	}
	for _, id := range entry.ev.Volunteers[roleID] {
		if id == user.ID {
			return models.Event{}, ErrAlreadyVolunteering
		}
	}
	role, ok := entry.ev.Role(roleID)
	if !ok {
		return models.Event{}, ErrRoleNotFound
	}
	if role.SpotsFilled >= role.SpotsTotal {
		return models.Event{}, ErrRoleFull
	}
	role.SpotsFilled++
	entry.ev.Volunteers[roleID] = append(entry.ev.Volunteers[roleID], user.ID)
	s.writeThrough(ctx, &entry.ev)
	return cloneEvent(&entry.ev), nil
}

// EventPatch updates an event's descriptive fields. Zero values mean "leave
// unchanged". Capacity and volunteer roles are not patchable.
type EventPatch struct {
	Title       string
	Description string
	Image       string
	Date        string
	StartTime   string
	EndTime     string
	Location    *models.EventLocation
	Category    string
}

// UpdateEvent applies the patch. Only the event's organizer may update it.
func (s *Store) UpdateEvent(ctx context.Context, eventID string, patch EventPatch) (models.Event, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Event{}, ErrUnauthenticated
	}
	entry, ok := s.entry(eventID)
	if !ok {
		return models.Event{}, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return models.Event{}, ErrNotFound
	}
	if entry.ev.OrganizerID != user.ID {
		return models.Event{}, ErrForbidden
	}
	if patch.Category != "" && !models.ValidCategory(patch.Category) {
		return models.Event{}, fmt.Errorf("%w: unknown category %q", ErrInvalidDraft, patch.Category)
	}
	if patch.Title != "" {
		entry.ev.Title = patch.Title
	}
	if patch.Description != "" {
		entry.ev.Description = patch.Description
	}
	if patch.Image != "" {
		entry.ev.Image = patch.Image
	}
	if patch.Date != "" {
		entry.ev.Date = patch.Date
	}
	if patch.StartTime != "" {
		entry.ev.StartTime = patch.StartTime
	}
	if patch.EndTime != "" {
		entry.ev.EndTime = patch.EndTime
	}
	if patch.Location != nil {
		entry.ev.Location = *patch.Location
	}
	if patch.Category != "" {
		entry.ev.Category = patch.Category
	}
	s.writeThrough(ctx, &entry.ev)
	return cloneEvent(&entry.ev), nil
}

// DeleteEvent removes the event. Only the event's organizer may delete it.
// The removed event is returned so the caller can clean up stored assets.
func (s *Store) DeleteEvent(ctx context.Context, eventID string) (models.Event, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Event{}, ErrUnauthenticated
	}
	entry, ok := s.entry(eventID)
	if !ok {
		return models.Event{}, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return models.Event{}, ErrNotFound
	}
	if entry.ev.OrganizerID != user.ID {
		return models.Event{}, ErrForbidden
	}
	entry.deleted = true

	s.mu.Lock()
	delete(s.events, eventID)
	for i, id := range s.order {
		if id == eventID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.DeleteEvent(ctx, eventID); err != nil {
			s.log.Printf("store: deleting event %s: %v", eventID, err)
		}
	}
	return cloneEvent(&entry.ev), nil
}

// ---------------- helpers ----------------

func (s *Store) entry(id string) (*eventEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.events[id]
	return entry, ok
}

// writeThrough stamps the event and pushes it to the persistence port.
// Called with the event lock held; in-memory state stays authoritative, port
// failures are logged only.
func (s *Store) writeThrough(ctx context.Context, ev *models.Event) {
	ev.UpdatedAt = time.Now().UTC()
	if s.persist == nil {
		return
	}
	if err := s.persist.UpdateEvent(ctx, cloneEvent(ev)); err != nil {
		s.log.Printf("store: persisting event %s: %v", ev.ID, err)
	}
}

func cloneEvent(ev *models.Event) models.Event {
	out := *ev
	out.VolunteerRoles = append([]models.VolunteerRole(nil), ev.VolunteerRoles...)
	out.Attendees = append([]string(nil), ev.Attendees...)
	out.Comments = append([]models.Comment(nil), ev.Comments...)
	out.Volunteers = make(map[string][]string, len(ev.Volunteers))
	for roleID, users := range ev.Volunteers {
		out.Volunteers[roleID] = append([]string(nil), users...)
	}
	return out
}

// AvatarURL builds the generated avatar used when a user registers without
// uploading one.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=6d28d9&color=fff"
}
