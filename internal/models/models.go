// Package models contains the wire-level data structures shared across
// handlers.
package models

import "time"

// Folder is a virtual folder derived from a common key prefix.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// MediaItem is a browsable photo or video inside a folder.
type MediaItem struct {
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
}

// UploadResult describes a freshly stored object.
type UploadResult struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// RenameResult aggregates the per-key outcomes of a folder rename. Moved
// and Failed never overlap; FailedKeys lists the keys left behind under
// the old prefix.
type RenameResult struct {
	OldName    string   `json:"oldName"`
	NewName    string   `json:"newName"`
	Moved      int      `json:"moved"`
	Failed     int      `json:"failed,omitempty"`
	FailedKeys []string `json:"failedKeys,omitempty"`
}

// DeleteFolderResult aggregates the per-key outcomes of a folder delete.
type DeleteFolderResult struct {
	Folder     string   `json:"folder"`
	Deleted    int      `json:"deletedItems"`
	Failed     int      `json:"failed,omitempty"`
	FailedKeys []string `json:"failedKeys,omitempty"`
}
