package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"commission/internal/invoice"
	"commission/internal/logger"
	"commission/internal/report"
)

// MaxUploadBytes caps the size of an uploaded payout report.
const MaxUploadBytes = 32 << 20

const uploadField = "file"

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Airtel Invoice Generator</title></head>
<body>
<h1>Airtel Invoice Generator</h1>
<form action="/invoice" method="post" enctype="multipart/form-data">
  <label>Upload your CSV file <input type="file" name="file" accept=".csv"></label>
  <button type="submit">Generate Output</button>
</form>
</body>
</html>
`

// Handler serves the upload form and turns uploads into invoice downloads
type Handler struct {
	generator invoice.InvoiceGenerator
	log       zerolog.Logger
}

// NewHandler creates a new invoice upload handler
func NewHandler(generator invoice.InvoiceGenerator) *Handler {
	return &Handler{
		generator: generator,
		log:       logger.WithComponent("web-handler"),
	}
}

// Routes returns the router of the web shell
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)
	r.Post("/invoice", h.CreateInvoice)

	return r
}

// Index handles GET / with the upload form
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexPage)
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// CreateInvoice handles POST /invoice: the uploaded payout report is turned
// into a workbook that is sent back as a download.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequestID(h.log, middleware.GetReqID(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Warn().Int64("limit", maxErr.Limit).Msg("Upload too large")
			http.Error(w, "The file is too large.", http.StatusRequestEntityTooLarge)
			return
		}
		log.Warn().Err(err).Msg("No payout report in upload")
		http.Error(w, "Upload your CSV file in the 'file' field.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Each request gets its own directory so concurrent uploads never share an output file.
	dir, err := os.MkdirTemp("", "invoice-*")
	if err != nil {
		log.Error().Err(err).Msg("Failed to create work directory")
		http.Error(w, "An error occurred while processing the file.", http.StatusInternalServerError)
		return
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Warn().Err(rmErr).Str("dir", dir).Msg("Failed to remove work directory")
		}
	}()

	outputPath := filepath.Join(dir, invoice.DefaultOutputFile)
	result, err := h.generator.GenerateFromReader(file, outputPath)
	if err != nil {
		status := statusFor(err)
		log.Warn().
			Err(err).
			Str("upload", header.Filename).
			Int("status", status).
			Msg("Invoice generation failed")
		http.Error(w, invoice.UserMessage(err), status)
		return
	}

	if err := sendWorkbook(w, result.OutputPath); err != nil {
		log.Error().Err(err).Msg("Failed to send invoice workbook")
		return
	}

	log.Info().
		Str("upload", header.Filename).
		Int("rows", result.RowCount).
		Float64("invoice", result.Summary.Invoice).
		Msg("Invoice workbook sent")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, invoice.ErrEmptyInput), errors.Is(err, invoice.ErrSchema):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func sendWorkbook(w http.ResponseWriter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		http.Error(w, "An error occurred while processing the file.", http.StatusInternalServerError)
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "An error occurred while processing the file.", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.DefaultOutputFile))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)

	_, err = io.Copy(w, f)
	return err
}

// requestLogger logs every request with zerolog
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		h.log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}
