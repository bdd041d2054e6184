package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const codeTTL = 10 * time.Minute

type SendCodeRequest struct {
	Phone  string `json:"phone" binding:"required,ilphone"`
	Method string `json:"method" binding:"required,oneof=whatsapp sms"`
}

// SendVerificationCode issues a 6-digit code for the phone and forwards
// it to the messaging automation webhook. Outside release mode the code
// is echoed in the response so local flows can complete without the
// webhook.
func SendVerificationCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	vc := models.VerificationCode{
		ID:        uuid.NewString(),
		Phone:     req.Phone,
		Code:      code,
		Method:    req.Method,
		ExpiresAt: time.Now().Add(codeTTL),
	}
	if err := config.DB.Create(&vc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue verification code"})
		return
	}

	// Webhook failure is logged but not surfaced: the code is valid
	// either way and support can relay it manually.
	if config.VerificationWebhookURL != "" {
		if err := dispatchCode(req.Phone, code, req.Method); err != nil {
			log.Printf("verification webhook failed for %s: %v", req.Phone, err)
		}
	}

	resp := gin.H{
		"message":    "Verification code sent",
		"method":     req.Method,
		"expires_at": vc.ExpiresAt,
	}
	if gin.Mode() != gin.ReleaseMode {
		resp["dev_code"] = code
	}
	c.JSON(http.StatusOK, resp)
}

func dispatchCode(phone, code, method string) error {
	payload, err := json.Marshal(gin.H{
		"phone":  phone,
		"code":   code,
		"method": method,
	})
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(config.VerificationWebhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// ConsumeVerificationCode validates the latest unused code for the
// phone and marks it used. A code can be consumed once.
func ConsumeVerificationCode(phone, code string) error {
	var vc models.VerificationCode
	err := config.DB.
		Where("phone = ? AND code = ? AND used = ?", phone, code, false).
		Order("created_at desc").
		First(&vc).Error
	if err != nil {
		return errors.New("invalid verification code")
	}
	if time.Now().After(vc.ExpiresAt) {
		return errors.New("verification code expired")
	}
	return config.DB.Model(&vc).Update("used", true).Error
}
