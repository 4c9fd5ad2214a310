package handler

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/accredhub/backend/internal/config"
	"github.com/accredhub/backend/internal/middleware"
	"github.com/accredhub/backend/internal/usecase"
	"github.com/accredhub/backend/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFrom converts the resolved request identity into the usecase actor.
// Role and school come from the token claims, the assignment set from the
// stored record.
func actorFrom(c *fiber.Ctx) usecase.Actor {
	auth := middleware.CurrentUser(c)
	actor := usecase.Actor{
		ID:       auth.ID(),
		Role:     auth.Role,
		SchoolID: auth.SchoolID,
	}
	for _, criteria := range auth.User.AssignedCriteria {
		actor.AssignedCriteriaIDs = append(actor.AssignedCriteriaIDs, criteria.ID)
	}
	return actor
}

// saveUpload writes a multipart file into the upload directory under a
// timestamped name so concurrent uploads of the same filename never collide.
func saveUpload(c *fiber.Ctx, file *multipart.FileHeader, fieldName string) (string, error) {
	if !util.AllowedUpload(file.Filename) {
		return "", util.ErrValidation("Unsupported file type")
	}
	storedName := fmt.Sprintf("%s-%d-%s", fieldName, time.Now().UnixMilli(), filepath.Base(file.Filename))
	savePath := filepath.Join(config.LoadStorageConfig().UploadDir, storedName)
	if err := c.SaveFile(file, savePath); err != nil {
		return "", err
	}
	return storedName, nil
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
