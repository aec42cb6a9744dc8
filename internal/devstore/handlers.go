package devstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frederic5962/bill-app/internal/audit"
	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/store"
)

// Handler serves the five remote store operations for local
// development, backed by Postgres and a directory of uploads.
type Handler struct {
	Repo      *Repository
	Secret    []byte
	UploadDir string
	BaseURL   string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) generateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.Secret)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	ctx := userContext(c)
	_, passwordHash, _, err := h.Repo.FindUser(ctx, body.Email)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.generateToken(body.Email)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	ip := c.IP()
	_ = audit.Write(ctx, h.Repo.Pool, audit.Entry{
		Email:  &body.Email,
		Action: audit.ActionLogin,
		IP:     &ip,
	})

	return c.JSON(store.AuthResponse{JWT: token})
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var body store.NewUser
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}
	if body.Type != domain.RoleEmployee && body.Type != domain.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "type must be Employee or Admin")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	ctx := userContext(c)
	id, err := h.Repo.InsertUser(ctx, body.Type, body.Name, body.Email, string(hashed))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	_ = audit.Write(ctx, h.Repo.Pool, audit.Entry{
		Email:      &body.Email,
		Action:     audit.ActionUserCreated,
		EntityType: "user",
		EntityID:   &id,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *Handler) ListBills(c *fiber.Ctx) error {
	email, role, err := h.caller(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	// Admins review everyone's bills.
	if role == domain.RoleAdmin {
		email = ""
	}

	items, err := h.Repo.ListBills(userContext(c), email)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list bills: "+err.Error())
	}

	return c.JSON(items)
}

func (h *Handler) CreateBill(c *fiber.Ctx) error {
	if _, _, err := h.caller(c); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	email := strings.TrimSpace(c.FormValue("email"))
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	name := uuid.NewString() + filepath.Ext(fh.Filename)
	if err := h.saveFile(name, c); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store file")
	}
	fileURL := strings.TrimSuffix(h.BaseURL, "/") + "/files/" + name

	ctx := userContext(c)
	id, err := h.Repo.InsertDraftBill(ctx, email, fileURL, fh.Filename)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create bill")
	}

	_ = audit.Write(ctx, h.Repo.Pool, audit.Entry{
		Email:      &email,
		Action:     audit.ActionBillCreated,
		EntityType: "bill",
		EntityID:   &id,
	})

	return c.Status(fiber.StatusCreated).JSON(store.CreateBillResponse{
		Key:     id,
		FileURL: fileURL,
	})
}

func (h *Handler) UpdateBill(c *fiber.Ctx) error {
	email, _, err := h.caller(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id must be a UUID")
	}

	var bill domain.Bill
	if err := c.BodyParser(&bill); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if bill.Status == "" {
		bill.Status = string(domain.StatusPending)
	}

	ctx := userContext(c)
	if err := h.Repo.UpdateBill(ctx, id, bill); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update bill")
	}

	_ = audit.Write(ctx, h.Repo.Pool, audit.Entry{
		Email:      &email,
		Action:     audit.ActionBillUpdated,
		EntityType: "bill",
		EntityID:   &id,
	})

	return c.JSON(fiber.Map{"ok": true})
}

// caller extracts the authenticated email and role from the Bearer token.
func (h *Handler) caller(c *fiber.Ctx) (string, domain.Role, error) {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "", errors.New("missing token")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return h.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	email, ok := claims["email"].(string)
	if !ok || strings.TrimSpace(email) == "" {
		return "", "", errors.New("email missing")
	}

	_, _, role, err := h.Repo.FindUser(userContext(c), email)
	if err != nil {
		return "", "", errors.New("unknown user")
	}
	return email, role, nil
}

func (h *Handler) saveFile(stored string, c *fiber.Ctx) error {
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return err
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(h.UploadDir, stored))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
