package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a registered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type sceneEntry struct {
	info  SceneInfo
	build func() *Scene
}

var registry = map[string]sceneEntry{
	"city": {
		info: SceneInfo{
			Description: "Rainy street with neon-lit buildings under a double rainbow",
			Group:       "City",
		},
		build: NewCityScene,
	},
	"showcase": {
		info: SceneInfo{
			Description: "One box per material preset on the wet street",
			Group:       "Materials",
		},
		build: NewShowcaseScene,
	},
	"unit-box": {
		info: SceneInfo{
			Description: "Single matte box lit from above",
			Group:       "Reference",
		},
		build: NewUnitBoxScene,
	},
}

// ListScenes returns every registered scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for id, entry := range registry {
		info := entry.info
		info.ID = id
		info.DisplayName = titleCase(id)
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})

	return scenes
}

// NewScene builds and validates the named scene
func NewScene(name string) (*Scene, error) {
	entry, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(sceneIDs(), ", "))
	}

	s := entry.build()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}

	return s, nil
}

// ListAllScenes returns the registered scenes grouped by category, groups sorted by name
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	groupNames := make([]string, 0, len(groupMap))
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

func sceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for _, info := range ListScenes() {
		ids = append(ids, info.ID)
	}
	return ids
}

// titleCase converts a filename-style string to title case
// e.g., "unit-box" -> "Unit Box"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
