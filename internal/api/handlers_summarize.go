package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"paperpal/internal/parser"
	"paperpal/internal/section"
	"paperpal/internal/segment"
	"paperpal/internal/summary"
)

// handleSummarize ingests a paper: extract spans, segment by font size,
// persist section files, reset the session and return the structured
// analysis. The previous session is replaced entirely; its section files
// are removed.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	spans, err := p.Parse(file, filename)
	if err != nil {
		jsonError(w, "failed to process document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(spans) == 0 {
		jsonError(w, "no text could be extracted from the document", http.StatusInternalServerError)
		return
	}

	sections := segment.Segment(spans, segment.Config{
		TitleSizeOffset: s.cfg.TitleSizeOffset,
		TitleMaxWords:   s.cfg.TitleMaxWords,
	})
	if len(sections) == 0 {
		jsonError(w, "no sections could be segmented from the document", http.StatusInternalServerError)
		return
	}

	sessionID := uuid.New()

	// Intermediate markdown lives only for the duration of the request.
	mdPath := filepath.Join(s.cfg.MarkdownDir, sessionID.String()+".md")
	if err := section.WriteMarkdownFile(sections, mdPath); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(mdPath)

	outDir := filepath.Join(s.cfg.SectionsDir, sessionID.String())
	paths, err := section.Split(mdPath, outDir, section.Options{Dedup: s.cfg.SlugDedup})
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(paths) == 0 {
		jsonError(w, "no section files could be produced", http.StatusInternalServerError)
		return
	}

	// Replace id, sections and history together, then drop the replaced
	// session's files.
	prev := s.sessions.Reset(sessionID, paths)
	if prev.ID != uuid.Nil {
		os.RemoveAll(filepath.Join(s.cfg.SectionsDir, prev.ID.String()))
	}

	s.log.Info("session reset",
		"session_id", sessionID,
		"filename", filename,
		"sections", len(paths),
	)

	gw := s.gateway(s.requestAPIKey(r), s.requestModel(r))
	report, err := summary.Generate(r.Context(), gw, paths)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SummarizeResponse{
		SessionID: sessionID.String(),
		Summary:   report,
	})
}

func (s *Server) requestAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return s.cfg.LLMAPIKey
}

func (s *Server) requestModel(r *http.Request) string {
	if model := r.Header.Get("X-Model-Name"); model != "" {
		return model
	}
	return s.cfg.LLMModel
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
