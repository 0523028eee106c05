package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestInlineContentDisposition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"token filename", "video_1.mp4", "inline; filename=video_1.mp4"},
		{"space", "team photo.jpg", `inline; filename="team photo.jpg"`},
		{"semicolon", "a;b.jpg", `inline; filename="a;b.jpg"`},
		{"quote", `say "hi".jpg`, `inline; filename="say \"hi\".jpg"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", http.NoBody), rec)

			inline(ctx, tt.filename)

			assert.Equal(t, tt.want, rec.Header().Get(echo.HeaderContentDisposition))
		})
	}
}
