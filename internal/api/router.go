package api

import (
	"database/sql"
	"net/http"

	"github.com/TWRT/issue-disassembler/internal/api/handlers"
	"github.com/TWRT/issue-disassembler/internal/client"
	"github.com/TWRT/issue-disassembler/internal/repository"
	"github.com/TWRT/issue-disassembler/internal/service"
)

func SetupRouter(db *sql.DB, generator client.ContentGenerator) *http.ServeMux {
	mux := http.NewServeMux()

	todoRepo := repository.NewTodoRepository(db)

	disassembleService := service.NewDisassembleService(generator, todoRepo)
	todoService := service.NewTodoService(todoRepo)

	disassembleHandler := handlers.NewDisassembleHandler(disassembleService)
	todoHandler := handlers.NewTodoHandler(todoService)

	mux.HandleFunc("POST /disassemble", disassembleHandler.Disassemble)

	mux.HandleFunc("GET /todos", todoHandler.ListTodos)
	mux.HandleFunc("GET /todos/{id}", todoHandler.GetTodo)
	mux.HandleFunc("DELETE /todos/{id}", todoHandler.DeleteTodo)
	mux.HandleFunc("DELETE /todos/{id}/issues/{pos}", todoHandler.DeleteIssue)
	mux.HandleFunc("PUT /todos/{id}/issues/{pos}/progression", todoHandler.SetIssueProgression)

	return mux
}
