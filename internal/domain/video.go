package domain

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/datastore/repository"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
	"github.com/tphakala/video-enrichment-api/internal/videoprobe"
)

const (
	thumbnailName        = "thumbnail.jpg"
	defaultVideoExt      = ".mp4"
	defaultVideoBaseName = "video"
	mimeOctetStream      = "application/octet-stream"
	mimeJPEG             = "image/jpeg"
)

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".m4v":  "video/x-m4v",
	".3gp":  "video/3gpp",
	".ogv":  "video/ogg",
}

// VideoContentType maps a video file extension to its MIME type
func VideoContentType(ext string) string {
	if ct, ok := videoContentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return mimeOctetStream
}

// VideoManager handles video records and their objects
type VideoManager struct {
	videos     repository.VideoRepository
	segments   repository.SegmentDetectionRepository
	store      objectstore.Store
	prober     videoprobe.Prober
	scratch    afero.Fs
	scratchDir string
	root       objectstore.Path
	log        logger.Logger
}

// List returns every video
func (m *VideoManager) List(ctx context.Context) ([]*entities.Video, error) {
	videos, err := m.videos.GetAll(ctx)
	if err != nil {
		return nil, dbError(err, "Video")
	}
	return videos, nil
}

// GetByID returns one video
func (m *VideoManager) GetByID(ctx context.Context, id int64) (*entities.Video, error) {
	video, err := m.videos.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrVideoNotFound, "Video", "Video %d not found", id)
	}
	return video, nil
}

// GetByUUID returns one video
func (m *VideoManager) GetByUUID(ctx context.Context, id string) (*entities.Video, error) {
	video, err := m.videos.GetByUUID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrVideoNotFound, "Video", "Video %s not found", id)
	}
	return video, nil
}

// ListByEntityIDs returns the videos with at least one segment detection of
// the given entities
func (m *VideoManager) ListByEntityIDs(ctx context.Context, entityIDs []int64) ([]*entities.Video, error) {
	if len(entityIDs) == 0 {
		return []*entities.Video{}, nil
	}

	segments, err := m.segments.GetByEntityIDs(ctx, entityIDs)
	if err != nil {
		return nil, dbError(err, "Segment detection")
	}

	seen := make(map[int64]struct{}, len(segments))
	videoIDs := make([]int64, 0, len(segments))
	for _, s := range segments {
		if _, ok := seen[s.VideoID]; ok {
			continue
		}
		seen[s.VideoID] = struct{}{}
		videoIDs = append(videoIDs, s.VideoID)
	}
	if len(videoIDs) == 0 {
		return []*entities.Video{}, nil
	}

	videos, err := m.videos.GetByIDs(ctx, videoIDs)
	if err != nil {
		return nil, dbError(err, "Video")
	}
	return videos, nil
}

// Thumbnail returns the JPEG stored next to the video
func (m *VideoManager) Thumbnail(ctx context.Context, id string) (*Blob, error) {
	video, err := m.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := objectstore.ParsePath(video.Path).Dir().Join(thumbnailName)
	data, err := download(ctx, m.store, p, "Thumbnail not found in S3")
	if err != nil {
		return nil, err
	}
	return &Blob{Data: data, ContentType: mimeJPEG}, nil
}

// Bytes returns the video file with a content type derived from its extension
func (m *VideoManager) Bytes(ctx context.Context, id string) (*Blob, *entities.Video, error) {
	video, err := m.GetByUUID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := download(ctx, m.store, objectstore.ParsePath(video.Path), "Video not found in S3")
	if err != nil {
		return nil, nil, err
	}
	return &Blob{Data: data, ContentType: VideoContentType(video.Extension)}, video, nil
}

// DeleteByID removes the video object and then the record
func (m *VideoManager) DeleteByID(ctx context.Context, id int64) error {
	video, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return m.delete(ctx, video)
}

// DeleteByUUID removes the video object and then the record
func (m *VideoManager) DeleteByUUID(ctx context.Context, id string) error {
	video, err := m.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	return m.delete(ctx, video)
}

func (m *VideoManager) delete(ctx context.Context, video *entities.Video) error {
	removeObject(ctx, m.store, m.log, objectstore.ParsePath(video.Path))

	if err := m.videos.Delete(ctx, video.ID); err != nil {
		return lookup(err, repository.ErrVideoNotFound, "Video", "Video %s not found", video.UUID)
	}
	m.log.Info("video deleted", logger.String("uuid", video.UUID))
	return nil
}

// CreateFromUpload probes an uploaded video, stores it with its thumbnail
// under a fresh UUID and records it.
func (m *VideoManager) CreateFromUpload(ctx context.Context, code string, up Upload) (*entities.Video, error) {
	if !strings.HasPrefix(up.ContentType, "video/") {
		return nil, errors.InvalidInput(component, "File must be a video")
	}

	data, err := io.ReadAll(up.Content)
	if err != nil {
		return nil, errors.New(err).
			Component(component).
			Category(errors.CategoryFileIO).
			Context("operation", "read_upload").
			Build()
	}

	info, thumbnail, err := m.inspect(ctx, up.Filename, data)
	if err != nil {
		return nil, err
	}

	ext := defaultVideoExt
	if up.Filename != "" {
		ext = path.Ext(up.Filename)
	}
	name := up.Filename
	if name == "" {
		name = defaultVideoBaseName + ext
	}

	id := uuid.NewString()
	videoPath := m.root.Join(id, name)
	thumbPath := m.root.Join(id, thumbnailName)

	if err := m.store.Upload(ctx, videoPath, data, up.ContentType); err != nil {
		return nil, errors.Upstream(component, err, "Failed to upload video to S3")
	}
	if err := m.store.Upload(ctx, thumbPath, thumbnail, mimeJPEG); err != nil {
		return nil, errors.Upstream(component, err, "Failed to upload thumbnail to S3")
	}

	video := &entities.Video{
		UUID:      id,
		Code:      code,
		Path:      videoPath.String(),
		Extension: ext,
		Frames:    info.Frames,
		Length:    int64(info.Duration()),
		FrameRate: info.FPS,
	}
	if err := m.videos.Create(ctx, video); err != nil {
		return nil, dbError(err, "Video")
	}

	m.log.Info("video uploaded",
		logger.String("uuid", id),
		logger.String("path", video.Path),
		logger.Int64("frames", info.Frames),
		logger.Float64("fps", info.FPS))
	return video, nil
}

// inspect writes data to the scratch filesystem and probes it there. The
// scratch file is removed before returning.
func (m *VideoManager) inspect(ctx context.Context, filename string, data []byte) (videoprobe.Info, []byte, error) {
	tmp, err := afero.TempFile(m.scratch, m.scratchDir, "upload-*"+path.Ext(filename))
	if err != nil {
		return videoprobe.Info{}, nil, scratchError(err, "create")
	}
	tmpName := tmp.Name()
	defer func() {
		if rmErr := m.scratch.Remove(tmpName); rmErr != nil {
			m.log.Warn("failed to remove scratch file",
				logger.String("path", tmpName),
				logger.Error(rmErr))
		}
	}()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return videoprobe.Info{}, nil, scratchError(err, "write")
	}

	info, err := m.prober.Probe(ctx, tmpName)
	if err != nil {
		return videoprobe.Info{}, nil, probeError(err, "Invalid video file")
	}

	thumbnail, err := m.prober.Thumbnail(ctx, tmpName)
	if err != nil {
		return videoprobe.Info{}, nil, probeError(err, "Could not read video frames")
	}
	return info, thumbnail, nil
}

// probeError maps unreadable input to InvalidInput with msg. Timeouts and
// missing tools stay server side.
func probeError(err error, msg string) error {
	if errors.Is(err, videoprobe.ErrUnreadable) || errors.Is(err, videoprobe.ErrNoFrames) {
		return errors.New(errors.NewStd(msg)).
			Component(component).
			Category(errors.CategoryInvalidInput).
			Context("cause", err.Error()).
			Build()
	}
	return errors.New(err).
		Component(component).
		Category(errors.CategoryVideoProbe).
		Build()
}

func scratchError(err error, op string) error {
	return errors.New(err).
		Component(component).
		Category(errors.CategoryFileIO).
		Context("operation", op+"_scratch_file").
		Build()
}
