package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/TWRT/issue-disassembler/internal/client/gemini"
	"github.com/TWRT/issue-disassembler/internal/models"
	"github.com/TWRT/issue-disassembler/internal/service"
)

type DisassembleRequestBody struct {
	Resource string `json:"resource"`
}

type DisassembleHandler struct {
	disassembleService *service.DisassembleService
}

func NewDisassembleHandler(disassembleService *service.DisassembleService) *DisassembleHandler {
	return &DisassembleHandler{
		disassembleService: disassembleService,
	}
}

func (h *DisassembleHandler) Disassemble(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return
	}

	var reqBody DisassembleRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	todo, err := h.disassembleService.Disassemble(reqBody.Resource)
	if err != nil {
		writeError(w, disassembleStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func disassembleStatus(err error) int {
	switch {
	case errors.Is(err, gemini.ErrTransport),
		errors.Is(err, gemini.ErrResponseParse),
		errors.Is(err, gemini.ErrMissingCandidate),
		errors.Is(err, gemini.ErrMalformedParts),
		errors.Is(err, models.ErrSchemaDecode):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
