// Package entities defines the GORM models of the video enrichment catalog.
//
// Tables:
//   - videos: uploaded video files and their probed metadata
//   - taxonomies: hierarchical labels, optionally parented
//   - entities: recognisable subjects with aliases, grouped by taxonomy
//   - entity_media_galleries: reference images of an entity, with optional embedding
//   - segment_detections: frame ranges where an entity appears in a video
//   - detections: per-frame bounding boxes inside a segment detection
package entities
