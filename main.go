package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/TWRT/issue-disassembler/internal/api"
	"github.com/TWRT/issue-disassembler/internal/client/gemini"
	"github.com/TWRT/issue-disassembler/internal/config"
	"github.com/TWRT/issue-disassembler/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	// Requests still go out without these; the API answers with an error.
	if missing := cfg.Missing(); len(missing) > 0 {
		log.Printf("warning: %s not set", strings.Join(missing, ", "))
	}

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("init database: ", err)
	}
	defer db.Close()

	fmt.Printf("History database ready at %s\n", cfg.DBPath)

	geminiClient := gemini.NewGeminiClient(cfg.GeminiBaseUrl, cfg.GeminiModel, cfg.GeminiToken)
	router := api.SetupRouter(db, geminiClient)

	fmt.Printf("Listening on %s\n", cfg.HTTPAddr)
	fmt.Println("Endpoints:")
	fmt.Println("   POST /disassemble - Break a problem description into a Todo")
	fmt.Println("   GET /todos - List stored Todos")
	fmt.Println("   GET /todos/{id} - Show one Todo")
	fmt.Println("   DELETE /todos/{id} - Delete a Todo")
	fmt.Println("   DELETE /todos/{id}/issues/{pos} - Delete an Issue")
	fmt.Println("   PUT /todos/{id}/issues/{pos}/progression - Set Issue progression")

	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Fatal("serve: ", err)
	}
}
