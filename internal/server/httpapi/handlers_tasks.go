package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

type createTaskRequest struct {
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
}

type updateTaskRequest struct {
	Status models.TaskStatus `json:"status"`
}

type taskResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{ID: t.ID, Title: t.Title, Description: t.Description, Status: t.Status}
}

func taskDetail(err error) string {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return "task not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "task with this title already exists"
	}
	return ""
}

func (s *HTTPServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.tasks.Create(r.Context(), identity(r).SubjectID, req.Title, req.Description, req.Status)
	if err != nil {
		s.writeError(w, r, err, taskDetail(err))
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(t))
}

func (s *HTTPServer) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context(), identity(r).SubjectID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.tasks.Get(r.Context(), identity(r).SubjectID, id)
	if err != nil {
		s.writeError(w, r, err, taskDetail(err))
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

func (s *HTTPServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	t, err := s.tasks.UpdateStatus(r.Context(), identity(r).SubjectID, id, req.Status)
	if err != nil {
		s.writeError(w, r, err, taskDetail(err))
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(t))
}

func (s *HTTPServer) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.tasks.Delete(r.Context(), identity(r).SubjectID, id); err != nil {
		s.writeError(w, r, err, taskDetail(err))
		return
	}
	writeJSON(w, http.StatusOK, detailResponse{Detail: "task deleted"})
}
