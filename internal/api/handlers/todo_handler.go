package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/TWRT/issue-disassembler/internal/repository"
	"github.com/TWRT/issue-disassembler/internal/service"
)

type SetProgressionRequestBody struct {
	Progression *int `json:"progression"`
}

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.GetTodos()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to get todos: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"todos": todos,
	})
}

func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodo(id)
	if err != nil {
		writeError(w, historyStatus(err), "Error trying to get todo: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"todo": todo,
	})
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(id); err != nil {
		writeError(w, historyStatus(err), "Error trying to delete todo: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	pos, ok := pathInt64(w, r, "pos")
	if !ok {
		return
	}

	if err := h.todoService.DeleteIssue(id, int(pos)); err != nil {
		writeError(w, historyStatus(err), "Error trying to delete issue: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) SetIssueProgression(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	pos, ok := pathInt64(w, r, "pos")
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return
	}

	var reqBody SetProgressionRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}
	if reqBody.Progression == nil {
		writeError(w, http.StatusBadRequest, "progression is required")
		return
	}

	if err := h.todoService.SetIssueProgression(id, int(pos), *reqBody.Progression); err != nil {
		writeError(w, historyStatus(err), "Error trying to set progression: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name+": "+r.PathValue(name))
		return 0, false
	}
	return v, true
}

func historyStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrTodoNotFound), errors.Is(err, repository.ErrIssueNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidProgression):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
