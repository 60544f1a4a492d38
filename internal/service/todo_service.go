package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/TWRT/issue-disassembler/internal/models"
	"github.com/TWRT/issue-disassembler/internal/repository"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

var ErrInvalidProgression = errors.New("progression must be 0 (not started), 1 (in progress) or 2 (done)")

type TodoView struct {
	repository.TodoRecord
	StoredAgo string `json:"stored_ago"`
}

type TodoService struct {
	todoRepo *repository.TodoRepository
	now      func() time.Time
}

func NewTodoService(todoRepo *repository.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo, now: time.Now}
}

func (s *TodoService) view(rec repository.TodoRecord) TodoView {
	return TodoView{
		TodoRecord: rec,
		StoredAgo:  humanize.RelTime(rec.StoredAt, s.now(), "ago", "from now"),
	}
}

func (s *TodoService) GetTodos() ([]TodoView, error) {
	records, err := s.todoRepo.GetTodos()
	if err != nil {
		return nil, fmt.Errorf("get todos: %w", err)
	}
	return lo.Map(records, func(rec repository.TodoRecord, _ int) TodoView { return s.view(rec) }), nil
}

func (s *TodoService) GetTodo(id int64) (TodoView, error) {
	rec, err := s.todoRepo.GetTodo(id)
	if err != nil {
		return TodoView{}, fmt.Errorf("get todo: %w", err)
	}
	return s.view(rec), nil
}

func (s *TodoService) DeleteTodo(id int64) error {
	if err := s.todoRepo.Delete(id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) DeleteIssue(todoID int64, position int) error {
	if err := s.todoRepo.DeleteIssue(todoID, position); err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	return nil
}

func (s *TodoService) SetIssueProgression(todoID int64, position, progression int) error {
	if !models.ValidProgression(progression) {
		return fmt.Errorf("%w: got %d", ErrInvalidProgression, progression)
	}
	if err := s.todoRepo.UpdateIssueProgression(todoID, position, progression); err != nil {
		return fmt.Errorf("set issue progression: %w", err)
	}
	return nil
}
