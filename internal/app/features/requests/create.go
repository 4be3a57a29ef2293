// internal/app/features/requests/create.go
package requests

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/htmlsanitize"
	"github.com/dalemusser/helpbridge/internal/app/system/inputval"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	maxAttachments    = 5
	maxAttachmentSize = 10 << 20 // 10 MiB per file
	maxUploadMemory   = 32 << 20
)

// HandleCreate creates a help request. The body is either JSON or,
// when attachments are included, multipart/form-data with the same
// field names plus "attachments" file parts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var in requestInput
	var attachments []models.Attachment

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "Invalid form submission.")
			return
		}
		in = inputFromForm(r)

		var err error
		attachments, err = h.saveAttachments(r.MultipartForm)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "store attachments failed", err, "Failed to store attachments.")
			return
		}
	} else {
		if err := apiutil.Decode(r, &in); err != nil {
			h.ErrLog.LogBadRequest(w, r, "decode create request failed", err, "Invalid request body.")
			return
		}
	}

	req, msg := h.buildRequest(in)
	if msg != "" {
		apiutil.Error(w, http.StatusBadRequest, msg)
		return
	}
	req.Attachments = attachments

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.Categories.KnownKey(ctx, req.CategoryID) {
		apiutil.Error(w, http.StatusBadRequest, "Unknown category.")
		return
	}

	// Snapshot the requester's profile onto the request.
	u, err := h.Users.GetByID(ctx, g.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.Error(w, http.StatusUnauthorized, "Account not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load requester failed", err, "Failed to create request.")
		return
	}
	req.RequesterID = u.ID
	req.RequesterName = u.Name
	req.RequesterEmail = u.Email
	req.RequesterPhone = u.Phone
	req.RequesterAddress = u.Address

	created, err := h.Store.Create(ctx, req)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create request failed", err, "Failed to create request.")
		return
	}

	h.invalidate()
	h.Audit.RequestCreated(ctx, r, g.UserID, created.ID, created.Title)
	h.Log.Info("request created",
		zap.String("request_id", created.ID.Hex()),
		zap.String("requester_id", g.UserID.Hex()),
		zap.String("category", created.CategoryID))

	apiutil.Data(w, http.StatusCreated, created)
}

// buildRequest validates and sanitizes the input into a model. The
// returned message is empty on success and user-facing otherwise.
func (h *Handler) buildRequest(in requestInput) (models.Request, string) {
	title := htmlsanitize.PlainText(in.Title)
	desc := htmlsanitize.Sanitize(strings.TrimSpace(in.Description))
	location := htmlsanitize.PlainText(in.Location)
	notes := htmlsanitize.PlainText(in.AdditionalNotes)
	category := strings.ToLower(strings.TrimSpace(in.Category.Key()))

	if in.VolunteersNeeded == 0 {
		in.VolunteersNeeded = 1
	}

	rules := requestRules{
		Title:            title,
		Description:      desc,
		Category:         category,
		Urgency:          strings.ToLower(strings.TrimSpace(in.Urgency)),
		Location:         location,
		VolunteersNeeded: in.VolunteersNeeded,
		ContactMethod:    strings.ToLower(strings.TrimSpace(in.ContactMethod)),
		AdditionalNotes:  notes,
	}
	if result := inputval.Validate(rules); result.HasErrors() {
		return models.Request{}, result.First()
	}

	req := models.Request{
		Title:            title,
		Description:      desc,
		CategoryID:       category,
		Urgency:          rules.Urgency,
		Location:         location,
		ExpectedTime:     strings.TrimSpace(in.ExpectedTime),
		VolunteersNeeded: in.VolunteersNeeded,
		ContactMethod:    rules.ContactMethod,
		AdditionalNotes:  notes,
	}

	if s := strings.TrimSpace(in.ExpectedDate); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, s); err != nil {
				return models.Request{}, "Expected date must be YYYY-MM-DD."
			}
		}
		t = t.UTC()
		// Compare at day granularity so "today" is still acceptable.
		if t.Before(time.Now().UTC().Truncate(24 * time.Hour)) {
			return models.Request{}, "Expected date cannot be in the past."
		}
		req.ExpectedDate = &t
	}

	return req, ""
}

// inputFromForm maps multipart form fields onto the JSON input shape.
func inputFromForm(r *http.Request) requestInput {
	volunteers, _ := strconv.Atoi(r.FormValue("volunteersNeeded"))
	in := requestInput{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Urgency:          r.FormValue("urgency"),
		Location:         r.FormValue("location"),
		ExpectedDate:     r.FormValue("expectedDate"),
		ExpectedTime:     r.FormValue("expectedTime"),
		VolunteersNeeded: volunteers,
		ContactMethod:    r.FormValue("contactMethod"),
		AdditionalNotes:  r.FormValue("additionalNotes"),
	}
	_ = in.Category.UnmarshalJSON([]byte(strconv.Quote(r.FormValue("category"))))
	return in
}

// saveAttachments writes uploaded files into UploadDir under random
// names and returns their metadata.
func (h *Handler) saveAttachments(form *multipart.Form) ([]models.Attachment, error) {
	files := form.File["attachments"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxAttachments {
		return nil, errors.New("too many attachments")
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return nil, err
	}

	var out []models.Attachment
	for _, fh := range files {
		if fh.Size > maxAttachmentSize {
			return nil, errors.New("attachment too large")
		}

		src, err := fh.Open()
		if err != nil {
			return nil, err
		}

		name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		dstPath := filepath.Join(h.UploadDir, name)
		dst, err := os.Create(dstPath)
		if err != nil {
			src.Close()
			return nil, err
		}
		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			os.Remove(dstPath)
			return nil, err
		}

		out = append(out, models.Attachment{
			Name:       filepath.Base(fh.Filename),
			URL:        "/uploads/" + name,
			MimeType:   fh.Header.Get("Content-Type"),
			Size:       fh.Size,
			UploadedAt: time.Now().UTC(),
		})
	}
	return out, nil
}
