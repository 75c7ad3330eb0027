package catalog

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/agentdex/agentdex/internal/domain"
)

// buildHashFields converts a domain Item into a flat map[string]string for HSET.
func buildHashFields(item domain.Item) map[string]string {
	return map[string]string{
		"name":             item.Name,
		"description":      item.Description,
		"content":          item.Content,
		"owner_id":         item.OwnerID,
		"is_system":        boolField(item.IsSystem),
		"is_active":        boolField(item.IsActive),
		"visibility":       string(item.Visibility),
		"tags":             strings.Join(item.Tags, ","),
		"deleted":          boolField(item.Deleted),
		"attachment_count": strconv.Itoa(item.AttachmentCount),
		"stage_count":      strconv.Itoa(item.StageCount),
	}
}

// parseHashFields converts a flat hash map back into a domain Item.
func parseHashFields(kind domain.Kind, id string, m map[string]string) domain.Item {
	item := domain.Item{
		ID:          id,
		Kind:        kind,
		Name:        m["name"],
		Description: m["description"],
		Content:     m["content"],
		OwnerID:     m["owner_id"],
		IsSystem:    m["is_system"] == "1",
		IsActive:    m["is_active"] == "1",
		Visibility:  domain.Visibility(m["visibility"]),
		Deleted:     m["deleted"] == "1",
	}
	if tags := m["tags"]; tags != "" {
		item.Tags = strings.Split(tags, ",")
	}
	if n, err := strconv.Atoi(m["attachment_count"]); err == nil {
		item.AttachmentCount = n
	}
	if n, err := strconv.Atoi(m["stage_count"]); err == nil {
		item.StageCount = n
	}
	return item
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// vectorToBytes serializes []float32 to binary (4 bytes per float, little-endian).
func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToVector deserializes binary data back to []float32.
// Returns nil on a malformed (non-multiple-of-4) payload.
func bytesToVector(b []byte) []float32 {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
