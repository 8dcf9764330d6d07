package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ventilation-voi/internal/api/models"
	"ventilation-voi/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// RoomHandler handles room preset requests
type RoomHandler struct {
	roomDir string
}

// GetRoomDir returns the room preset directory path (for debugging)
func (h *RoomHandler) GetRoomDir() string {
	return h.roomDir
}

// NewRoomHandler creates a new room handler
func NewRoomHandler() *RoomHandler {
	dir := os.Getenv("ROOM_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "rooms")
		} else {
			dir = "./examples/rooms"
		}
	}

	absDir, err := filepath.Abs(dir)
	if err == nil {
		dir = absDir
	}

	log.Printf("RoomHandler: Using room directory: %s", dir)

	return &RoomHandler{roomDir: dir}
}

// ListRooms handles GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms := []models.RoomInfo{}

	entries, err := os.ReadDir(h.roomDir)
	if err != nil {
		log.Printf("RoomHandler: Failed to read room directory %s: %v", h.roomDir, err)
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.roomDir, entry.Name())
		info, err := h.loadRoomInfo(path, entry.Name())
		if err != nil {
			log.Printf("RoomHandler: Failed to load room file %s: %v", path, err)
			continue // Skip invalid files
		}
		rooms = append(rooms, *info)
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *RoomHandler) loadRoomInfo(path, filename string) (*models.RoomInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Room config.RoomConfig `yaml:"room"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	// Keep the filename without extension as the ID for consistency.
	id := strings.TrimSuffix(filename, ".yaml")

	name := wrapper.Room.Name
	if name == "" {
		name = id
	}

	return &models.RoomInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.RoomSpecs{
			VolumeM3:     wrapper.Room.VolumeM3,
			HorizonHours: wrapper.Room.HorizonHours,
		},
	}, nil
}
