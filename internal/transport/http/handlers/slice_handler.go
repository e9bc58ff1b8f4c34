package handlers

import (
	"net/http"
	"strconv"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/service"
	"github.com/slice-of-life/backend/internal/transport/http/middleware"
	"github.com/slice-of-life/backend/pkg/validator"
)

// maxSliceImageBytes bounds the multipart memory buffer for uploads.
const maxSliceImageBytes = 32 << 20

type SliceHandler struct {
	sliceService *service.SliceService
}

func NewSliceHandler(sliceService *service.SliceService) *SliceHandler {
	return &SliceHandler{sliceService: sliceService}
}

func (h *SliceHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", service.DefaultPageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := h.sliceService.LatestSlices(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *SliceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	slice, err := h.sliceService.SliceByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slice)
}

func (h *SliceHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	threads, err := h.sliceService.CommentsForSlice(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, threads)
}

func (h *SliceHandler) Reactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	groups, err := h.sliceService.ReactionsForSlice(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Create accepts a multipart form: handle, free_text, task_id, slice_image.
// The authenticated subject must match the handle being posted for.
func (h *SliceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSliceImageBytes); err != nil {
		respondError(w, apierr.New(apierr.BadRequest, "invalid multipart form"))
		return
	}

	handle := r.FormValue("handle")
	taskIDStr := r.FormValue("task_id")
	if errs := validator.ValidateNewSlice(handle, taskIDStr); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if middleware.Subject(r.Context()) != handle {
		respondError(w, apierr.New(apierr.Unauthorized, "credentials do not match the posting handle"))
		return
	}

	taskID, err := strconv.Atoi(taskIDStr)
	if err != nil {
		respondError(w, apierr.New(apierr.BadRequest, "task_id must be an integer"))
		return
	}

	file, header, err := r.FormFile("slice_image")
	if err != nil {
		respondError(w, apierr.New(apierr.BadRequest, "slice_image is required"))
		return
	}
	defer file.Close()

	input := service.NewSliceInput{
		Handle:   handle,
		FreeText: r.FormValue("free_text"),
		TaskID:   taskID,
		FileName: header.Filename,
		Image:    file,
		Size:     header.Size,
	}
	if err := h.sliceService.CreateSlice(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": "slice created"})
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, apierr.New(apierr.BadRequest, "id must be an integer")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apierr.Newf(apierr.BadRequest, "%s must be a non-negative integer", name)
	}
	return n, nil
}
