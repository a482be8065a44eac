package v1alpha1

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-forge/internal/auth"
	"github.com/KirkDiggler/rpg-forge/internal/entities"
	"github.com/KirkDiggler/rpg-forge/internal/errors"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) // nolint:errcheck // client went away
}

// writeError maps err to its HTTP status with a flat {"error": ...} body
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetCode(err).HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: errors.GetMessage(err)})
}

// decodeBody reads a JSON request body, rejecting unknown fields
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request body")
	}
	if err := entities.DecodeStrict(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request body")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.InvalidArgumentf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// queryVersion returns ?version=N, or 0 when absent
func queryVersion(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("version")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.InvalidArgumentf("invalid version %q", raw)
	}
	return v, nil
}

// ownerID is the authenticated user, set by authenticate
func ownerID(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func wantsMarkdown(r *http.Request) bool {
	return r.URL.Query().Get("format") == "markdown"
}

func writeMarkdown(w http.ResponseWriter, markdown string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, markdown) // nolint:errcheck // client went away
}
