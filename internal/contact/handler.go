package contact

import (
	"strings"

	"envanter-backend/internal/database"
	"envanter-backend/internal/models"
	"envanter-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ContactMessageRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Message  string `json:"message" validate:"required"`
}

// POST /api/contact
// Halka açık iletişim formu; oturum gerektirmez, kullanıcıya bağlanmaz.
func CreateContactMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ContactMessageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.FullName = strings.TrimSpace(body.FullName)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Message = strings.TrimSpace(body.Message)

		if fields := validation.Struct(body); fields != nil {
			return validation.BadRequest(c, fields)
		}

		msg := models.ContactMessage{
			FullName: body.FullName,
			Email:    body.Email,
			Message:  body.Message,
		}

		if err := database.DB.Create(&msg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesaj kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Mesajınız başarıyla gönderildi!",
		})
	}
}
