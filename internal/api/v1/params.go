package api

import (
	"fmt"
	"mime"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/validation"
)

const (
	msgFieldRequired = "field required"
	msgNotInteger    = "value is not a valid integer"
	msgNotBool       = "value is not a valid boolean"
	msgInvalidBody   = "invalid JSON body"
)

// int64Param parses a numeric path parameter
func int64Param(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, fieldError(name, msgNotInteger)
	}
	return id, nil
}

// softParam reads the optional ?soft= flag of delete endpoints
func softParam(ctx echo.Context) (bool, error) {
	raw := ctx.QueryParam("soft")
	if raw == "" {
		return false, nil
	}
	soft, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fieldError("soft", msgNotBool)
	}
	return soft, nil
}

// bindJSON decodes the request body into dst and validates it. Path and
// query parameters are not bound.
func (c *Controller) bindJSON(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return fieldError("body", msgInvalidBody)
	}
	if err := c.validator.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return errors.New(verr).
				Component("api").
				Category(errors.CategoryValidation).
				Build()
		}
		return err
	}
	return nil
}

// formValue returns a required multipart field
func formValue(ctx echo.Context, name string) (string, error) {
	value := ctx.FormValue(name)
	if value == "" {
		return "", fieldError(name, msgFieldRequired)
	}
	return value, nil
}

// formInt64 returns a required numeric multipart field
func formInt64(ctx echo.Context, name string) (int64, error) {
	raw, err := formValue(ctx, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fieldError(name, msgNotInteger)
	}
	return n, nil
}

// formUpload opens the required multipart file. The caller closes the
// returned file once the upload has been consumed.
func formUpload(ctx echo.Context, name string) (domain.Upload, multipart.File, error) {
	fh, err := ctx.FormFile(name)
	if err != nil {
		return domain.Upload{}, nil, fieldError(name, msgFieldRequired)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, nil, errors.New(fmt.Errorf("open multipart file: %w", err)).
			Component("api").
			Category(errors.CategoryFileIO).
			Context("filename", fh.Filename).
			Build()
	}

	return domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Content:     f,
	}, f, nil
}

// isMultipart reports whether the request carries a multipart form
func isMultipart(ctx echo.Context) bool {
	return strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// inline sets an inline Content-Disposition for a binary response
func inline(ctx echo.Context, filename string) {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": filename}))
}
