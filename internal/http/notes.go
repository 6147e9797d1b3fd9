package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notekeeper/internal/domain"
)

type noteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// updateNoteRequest leaves title checks to the service, which runs them after
// the ownership lookup.
type updateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	OwnerID   int64  `json:"owner_id"`
	Owner     string `json:"owner"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) createNote(c *gin.Context) {
	owner, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	note, err := h.notes.Create(c.Request.Context(), req.Title, req.Content, owner)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.log(c).WithFields(logrus.Fields{"user": owner.Username, "note_id": note.ID}).Info("note created")
	c.JSON(http.StatusCreated, noteToResponse(*note, owner))
}

func (h *Handler) listNotes(c *gin.Context) {
	owner, ok := h.currentUser(c)
	if !ok {
		return
	}

	notes, err := h.notes.ListForOwner(c.Request.Context(), owner)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]NoteResponse, len(notes))
	for i := range notes {
		resp[i] = noteToResponse(notes[i], owner)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getNote(c *gin.Context) {
	owner, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.notes.GetForOwner(c.Request.Context(), id, owner)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, noteToResponse(*note, owner))
}

func (h *Handler) updateNote(c *gin.Context) {
	owner, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	note, err := h.notes.Update(c.Request.Context(), id, req.Title, req.Content, owner)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.log(c).WithFields(logrus.Fields{"user": owner.Username, "note_id": note.ID}).Info("note updated")
	c.JSON(http.StatusOK, noteToResponse(*note, owner))
}

func (h *Handler) deleteNote(c *gin.Context) {
	owner, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), id, owner); err != nil {
		h.writeError(c, err)
		return
	}

	h.log(c).WithFields(logrus.Fields{"user": owner.Username, "note_id": id}).Info("note deleted")
	c.Status(http.StatusNoContent)
}

// parseNoteID rejects ids that are not numbers. Numeric ids no note can have
// still reach the service and miss like any other.
func parseNoteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid note id"})
		return 0, false
	}
	return id, true
}

func noteToResponse(note domain.Note, owner *domain.User) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		OwnerID:   note.OwnerID,
		Owner:     owner.Username,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
