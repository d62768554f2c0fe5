package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/darshan87986/CommunityHub/models"
	"github.com/darshan87986/CommunityHub/store"
	"github.com/darshan87986/CommunityHub/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Title          string  `form:"title" binding:"required"`
			Description    string  `form:"description"`
			Date           string  `form:"date" binding:"required"`
			StartTime      string  `form:"start_time" binding:"required"`
			EndTime        string  `form:"end_time" binding:"required"`
			Address        string  `form:"address"`
			City           string  `form:"city"`
			State          string  `form:"state"`
			Zip            string  `form:"zip"`
			Category       string  `form:"category" binding:"required"`
			VolunteerRoles string  `form:"volunteer_roles"` // JSON array
			IsFree         bool    `form:"is_free"`
			TicketPrice    float64 `form:"ticket_price"`
			TotalSpots     int     `form:"total_spots"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// --- Parse volunteer roles if provided ---
		var roles []models.VolunteerRole
		if input.VolunteerRoles != "" {
			if err := json.Unmarshal([]byte(input.VolunteerRoles), &roles); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid volunteer_roles JSON"})
				return
			}
		}

		// --- Handle image upload ---
		var imageURL string
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}
		if form != nil {
			if files := form.File["image"]; len(files) > 0 {
				fileHeader := files[0]
				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				imageURL, err = utils.UploadToCloudinary(file, fileHeader)
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{
						"error":   "image upload failed",
						"details": err.Error(),
						"file":    fileHeader.Filename,
					})
					return
				}
			}
		}

		draft := store.EventDraft{
			Title:       input.Title,
			Description: input.Description,
			Image:       imageURL,
			Date:        input.Date,
			StartTime:   input.StartTime,
			EndTime:     input.EndTime,
			Location: models.EventLocation{
				Address: input.Address,
				City:    input.City,
				State:   input.State,
				Zip:     input.Zip,
			},
			Category:       input.Category,
			VolunteerRoles: roles,
			IsFree:         input.IsFree,
			TicketPrice:    input.TicketPrice,
			TotalSpots:     input.TotalSpots,
		}

		event, err := st.CreateEvent(c.Request.Context(), draft)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- LIST ----------------
func ListEvents(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		events := st.Events(c.Request.Context())

		// --- Apply query filters ---
		q := strings.ToLower(c.Query("q"))
		category := c.Query("category")
		filtered := events[:0:0]
		for _, ev := range events {
			if q != "" && !strings.Contains(strings.ToLower(ev.Title), q) {
				continue
			}
			if category != "" && ev.Category != category {
				continue
			}
			filtered = append(filtered, ev)
		}

		if len(filtered) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		// --- Pick the most recently updated event ---
		latest := filtered[0]
		for _, ev := range filtered {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		// --- Generate ETag from latest event ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, filtered)
	}
}

// ---------------- GET ----------------
func GetEvent(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := st.Event(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, event)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title       string `form:"title"`
			Description string `form:"description"`
			Date        string `form:"date"`
			StartTime   string `form:"start_time"`
			EndTime     string `form:"end_time"`
			Address     string `form:"address"`
			City        string `form:"city"`
			State       string `form:"state"`
			Zip         string `form:"zip"`
			Category    string `form:"category"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		patch := store.EventPatch{
			Title:       input.Title,
			Description: input.Description,
			Date:        input.Date,
			StartTime:   input.StartTime,
			EndTime:     input.EndTime,
			Category:    input.Category,
		}
		if input.Address != "" || input.City != "" || input.State != "" || input.Zip != "" {
			patch.Location = &models.EventLocation{
				Address: input.Address,
				City:    input.City,
				State:   input.State,
				Zip:     input.Zip,
			}
		}

		// --- Handle replacement image upload ---
		var oldImage string
		form, _ := c.MultipartForm()
		if form != nil {
			if files := form.File["image"]; len(files) > 0 {
				fileHeader := files[0]
				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open image"})
					return
				}
				url, err := utils.UploadToCloudinary(file, fileHeader)
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
					return
				}
				if existing, err := st.Event(c.Request.Context(), c.Param("id")); err == nil {
					oldImage = existing.Image
				}
				patch.Image = url
			}
		}

		updated, err := st.UpdateEvent(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			fail(c, err)
			return
		}

		if oldImage != "" && oldImage != updated.Image {
			if err := utils.DeleteFromCloudinary(oldImage); err != nil {
				// Orphaned image only; the update itself succeeded.
				c.JSON(http.StatusOK, gin.H{
					"message": "Event updated, old image not removed",
					"event":   updated,
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := st.DeleteEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		if deleted.Image != "" {
			utils.DeleteFromCloudinary(deleted.Image)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event deleted successfully",
			"id":      deleted.ID,
		})
	}
}

// ---------------- JOIN ----------------
func JoinEvent(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := st.JoinEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// ---------------- VOLUNTEER ----------------
func VolunteerForRole(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RoleID string `json:"roleId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event, err := st.VolunteerForRole(c.Request.Context(), c.Param("id"), input.RoleID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// ---------------- COMMENT ----------------
func AddComment(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comment, err := st.AddComment(c.Request.Context(), c.Param("id"), input.Content)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}
