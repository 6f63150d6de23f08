package handlers

import (
	"github.com/creator-marketplace/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
)

// MetaHandler serves the pick lists used while authoring a draft. Drafts
// store the values as-is.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

var predefinedCategories = []string{
	"Gaming", "Tech", "Fitness", "Beauty", "Education",
	"Lifestyle", "Entertainment", "Food", "Travel", "Music",
	"Art", "Sports", "Fashion", "Health", "Business",
}

var predefinedPlatforms = []string{
	"YouTube", "TikTok", "Instagram", "Twitch", "Twitter", "LinkedIn",
}

var predefinedRegions = []string{
	"United States", "Canada", "United Kingdom", "Germany", "France",
	"Australia", "Japan", "South Korea", "Brazil", "Mexico", "Global",
}

var predefinedLanguages = []string{
	"English", "Spanish", "French", "German", "Portuguese",
	"Japanese", "Korean", "Chinese", "Italian", "Dutch",
}

func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedCategories})
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedPlatforms})
}

func (h *MetaHandler) GetRegions(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedRegions})
}

func (h *MetaHandler) GetLanguages(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedLanguages})
}
