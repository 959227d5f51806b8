package session

import "time"

// mapToPackageRecord converts a decoded package payload to a PackageRecord,
// keeping the full map in Attributes.
func mapToPackageRecord(m map[string]any) PackageRecord {
	r := PackageRecord{Attributes: m}

	r.ID = getInt(m, "id")
	r.Name = getString(m, "name")
	r.Version = getString(m, "version")
	r.PackageType = getString(m, "package_type")
	r.CreatedAt = getTime(m, "created_at")

	return r
}

// mapToPackageFile converts a decoded package-file payload.
func mapToPackageFile(m map[string]any) PackageFile {
	return PackageFile{
		ID:       getInt(m, "id"),
		FileName: getString(m, "file_name"),
		Size:     int64(getInt(m, "size")),
	}
}

// mapToProjectInfo converts a decoded project payload to a ProjectInfo,
// keeping the full map in Attributes.
func mapToProjectInfo(m map[string]any) ProjectInfo {
	info := ProjectInfo{Attributes: m}

	info.ID = getInt(m, "id")
	info.Name = getString(m, "name")
	info.Path = getString(m, "path")
	info.PathWithNamespace = getString(m, "path_with_namespace")
	info.Description = getString(m, "description")
	info.WebURL = getString(m, "web_url")
	info.Visibility = getString(m, "visibility")
	info.StarCount = getInt(m, "star_count")
	info.ForksCount = getInt(m, "forks_count")
	info.CreatedAt = getTime(m, "created_at")
	info.LastActivityAt = getTime(m, "last_activity_at")

	if archived, ok := m["archived"].(bool); ok {
		info.Archived = archived
	}
	if ns, ok := m["namespace"].(map[string]any); ok {
		info.Namespace = getString(ns, "path")
	}

	return info
}

// getString safely gets a string value from a map.
func getString(m map[string]any, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// getInt safely gets an integer value from a map. JSON numbers decode
// as float64.
func getInt(m map[string]any, key string) int {
	switch val := m[key].(type) {
	case float64:
		return int(val)
	case int:
		return val
	}
	return 0
}

// getTime parses an RFC3339 timestamp value from a map.
func getTime(m map[string]any, key string) time.Time {
	s := getString(m, key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
