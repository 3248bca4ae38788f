package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"aptbillmanager/internal/models"
	"aptbillmanager/internal/repositories"
	"aptbillmanager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxCommitteeMembers = 5

// genericOtpMessage is returned whether or not the email is registered, so
// the endpoint cannot be used to enumerate committee accounts.
const genericOtpMessage = "If the email is authorized, an OTP has been sent."

type AuthHandler struct {
	members repositories.MemberRepository
	otp     services.OTPService
	auth    services.AuthService
	email   services.EmailService
}

func NewAuthHandler(members repositories.MemberRepository, otp services.OTPService, auth services.AuthService, email services.EmailService) *AuthHandler {
	return &AuthHandler{members: members, otp: otp, auth: auth, email: email}
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req models.OtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	member, err := h.members.GetByEmail(c.Request.Context(), email)
	if err != nil || member == nil || !member.IsActive {
		c.JSON(http.StatusOK, gin.H{"message": genericOtpMessage})
		return
	}

	code := h.otp.Generate(email)
	if err := h.email.SendOTPEmail(email, code); err != nil {
		// log only; surfacing the failure would leak account existence
		log.Printf("[auth][otp] send failed for %s: %v", email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully to your email address."})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.OtpVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	member, err := h.members.GetByEmail(c.Request.Context(), email)
	if err != nil || member == nil || !member.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
		return
	}

	if !h.otp.Verify(email, req.Otp) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OTP."})
		return
	}

	token, err := h.auth.CreateAccessToken(email)
	if err != nil {
		log.Printf("[auth][verify] sign token failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *AuthHandler) ListMembers(c *gin.Context) {
	members, err := h.members.List(c.Request.Context())
	if err != nil {
		log.Printf("[auth][members] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}
	if members == nil {
		members = []*models.CommitteeMember{}
	}
	c.JSON(http.StatusOK, members)
}

func (h *AuthHandler) AddMember(c *gin.Context) {
	var req models.CommitteeMemberCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.members.CountActive(c.Request.Context())
	if err != nil {
		log.Printf("[auth][members] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}
	if count >= maxCommitteeMembers {
		c.JSON(http.StatusForbidden, gin.H{"error": "Maximum of 5 committee members reached."})
		return
	}

	member, err := h.members.Create(c.Request.Context(), strings.TrimSpace(req.Email), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or phone number already registered."})
			return
		}
		log.Printf("[auth][members] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *AuthHandler) RemoveMember(c *gin.Context) {
	caller, ok := currentMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	count, err := h.members.CountActive(c.Request.Context())
	if err != nil {
		log.Printf("[auth][members] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}
	if count <= 1 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete: Minimum of 1 committee member must remain active."})
		return
	}
	if caller.ID == id {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete your own active account."})
		return
	}

	deleted, err := h.members.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("[auth][members] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found."})
		return
	}

	c.Status(http.StatusNoContent)
}
