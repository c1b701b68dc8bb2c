package controller

import (
	"strings"

	clientdto "onboardku_backend/internals/features/clients/dto"
	clientmodel "onboardku_backend/internals/features/clients/model"
	helper "onboardku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{
		DB:       db,
		Validate: validator.New(),
	}
}

var clientSortColumns = map[string]string{
	"created_at":   "created_at",
	"company_name": "company_name",
	"code":         "code",
}

// =============================
// POST /api/clients
// =============================
func (ctrl *ClientController) Create(c *fiber.Ctx) error {
	var req clientdto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	client := clientmodel.ClientModel{
		Code:               strings.TrimSpace(req.Code),
		CompanyCode:        req.CompanyCode,
		CompanyName:        strings.TrimSpace(req.CompanyName),
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
		HeadquarterAddress: req.HeadquarterAddress,
		SocialLinks:        req.SocialLinks,
		IsActive:           true,
		AssignedSaleID:     req.AssignedSaleID,
	}
	if err := ctrl.DB.Create(&client).Error; err != nil {
		return helper.Error(c, fiber.StatusConflict, "Client code already exists")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Client created", client)
}

// =============================
// GET /api/clients
// =============================
func (ctrl *ClientController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctrl.DB.Model(&clientmodel.ClientModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("company_name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if c.Query("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count clients")
	}

	order, err := p.SafeOrderClause(clientSortColumns, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid sort key")
	}

	var clients []clientmodel.ClientModel
	if err := q.Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&clients).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list clients")
	}

	return helper.Success(c, "OK", fiber.Map{
		"clients":    clients,
		"pagination": helper.BuildMeta(total, p),
	})
}

// =============================
// GET /api/clients/dropdown
// =============================
func (ctrl *ClientController) Dropdown(c *fiber.Ctx) error {
	var items []clientdto.ClientDropdownItem
	if err := ctrl.DB.Model(&clientmodel.ClientModel{}).
		Select("id, code, company_name").
		Where("is_active = ?", true).
		Order("company_name ASC").
		Scan(&items).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list clients")
	}
	return helper.Success(c, "OK", items)
}

// =============================
// GET /api/clients/:id
// =============================
func (ctrl *ClientController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	var client clientmodel.ClientModel
	if err := ctrl.DB.First(&client, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Client not found")
	}

	var contacts []clientmodel.ClientContactModel
	if err := ctrl.DB.Where("client_id = ?", client.ID).
		Order("is_primary_contact DESC, name ASC").
		Find(&contacts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load contacts")
	}

	return helper.Success(c, "OK", fiber.Map{
		"client":   client,
		"contacts": contacts,
	})
}

// =============================
// PATCH /api/clients/:id
// =============================
func (ctrl *ClientController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	var req clientdto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var client clientmodel.ClientModel
	if err := ctrl.DB.First(&client, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Client not found")
	}

	updates := map[string]any{}
	if req.CompanyCode != nil {
		updates["company_code"] = *req.CompanyCode
	}
	if req.CompanyName != nil {
		updates["company_name"] = strings.TrimSpace(*req.CompanyName)
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.HeadquarterAddress != nil {
		updates["headquarter_address"] = *req.HeadquarterAddress
	}
	if req.SocialLinks != nil {
		updates["social_links"] = req.SocialLinks
	}
	if req.AssignedSaleID != nil {
		updates["assigned_sale_id"] = *req.AssignedSaleID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&client).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update client")
	}
	return helper.Success(c, "Client updated", client)
}

// =============================
// POST /api/clients/:id/contacts
// =============================
func (ctrl *ClientController) AddContact(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid client ID")
	}

	var req clientdto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var exists int64
	if err := ctrl.DB.Model(&clientmodel.ClientModel{}).
		Where("id = ?", clientID).Count(&exists).Error; err != nil || exists == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Client not found")
	}

	contact := clientmodel.ClientContactModel{
		ClientID:         clientID,
		Name:             strings.TrimSpace(req.Name),
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		TelegramUsername: req.TelegramUsername,
		TelegramChatID:   req.TelegramChatID,
		Position:         req.Position,
		IsPrimaryContact: req.IsPrimaryContact,
		IsActive:         true,
	}
	if err := ctrl.DB.Create(&contact).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create contact")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Contact created", contact)
}

// =============================
// PATCH /api/clients/contacts/:id
// =============================
func (ctrl *ClientController) UpdateContact(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contact ID")
	}

	var req clientdto.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var contact clientmodel.ClientContactModel
	if err := ctrl.DB.First(&contact, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Contact not found")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.TelegramUsername != nil {
		updates["telegram_username"] = *req.TelegramUsername
	}
	if req.TelegramChatID != nil {
		updates["telegram_chat_id"] = *req.TelegramChatID
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.IsPrimaryContact != nil {
		updates["is_primary_contact"] = *req.IsPrimaryContact
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&contact).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update contact")
	}
	return helper.Success(c, "Contact updated", contact)
}
