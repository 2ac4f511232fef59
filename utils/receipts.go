package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ReceiptClaims is embedded in short-lived receipt download links so a receipt
// URL can be shared without exposing the payment API.
type ReceiptClaims struct {
	PaymentID uint `json:"paymentID"`
	jwt.RegisteredClaims
}

func CreateReceiptToken(paymentID uint) (string, error) {
	claims := ReceiptClaims{
		PaymentID: paymentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("RECEIPT_TOKEN_SECRET")))
}

func ParseReceiptToken(tokenStr string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ReceiptClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("RECEIPT_TOKEN_SECRET")), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*ReceiptClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid receipt token")
	}
	return claims.PaymentID, nil
}
