package service

import (
	"fmt"
	"log"
	"time"

	"github.com/TWRT/issue-disassembler/internal/client"
	"github.com/TWRT/issue-disassembler/internal/models"
	"github.com/TWRT/issue-disassembler/internal/prompt"
	"github.com/TWRT/issue-disassembler/internal/repository"
)

type DisassembleService struct {
	generator client.ContentGenerator
	todoRepo  *repository.TodoRepository
	now       func() time.Time
}

// NewDisassembleService accepts a nil todoRepo, in which case results are
// not kept in history.
func NewDisassembleService(generator client.ContentGenerator, todoRepo *repository.TodoRepository) *DisassembleService {
	return &DisassembleService{
		generator: generator,
		todoRepo:  todoRepo,
		now:       time.Now,
	}
}

// Disassemble asks the model to break resource down into a Todo with its
// Issues. Nothing is retried.
func (s *DisassembleService) Disassemble(resource string) (*models.Todo, error) {
	content := prompt.Compose(resource)
	log.Printf("disassemble prompt:\n%s", content)

	text, err := s.generator.GenerateContent(content)
	if err != nil {
		log.Printf("generate content failed: %v", err)
		return nil, fmt.Errorf("generate content: %w", err)
	}
	log.Printf("generated text: %s", text)

	todo, err := models.DecodeTodo(text)
	if err != nil {
		log.Printf("decode todo failed: %v, text: %q", err, text)
		return nil, err
	}

	// Progression is tracked by the history, whatever the model says.
	for i := range todo.Issues {
		todo.Issues[i].Progression = nil
	}

	if todo.CreatedAt == nil {
		now := s.now().UTC()
		todo.CreatedAt = &now
	}

	if s.todoRepo != nil {
		id, err := s.todoRepo.Create(todo)
		if err != nil {
			log.Printf("store todo in history failed: %v", err)
		} else {
			log.Printf("stored todo %d with %d issues", id, len(todo.Issues))
		}
	}

	return todo, nil
}
