package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Razorpayの注文作成と署名検証のアダプタ。
// usecase側のPaymentGateway interfaceを満たす。
type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// DI
func NewRazorpayGateway(keyID string, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// フロントのcheckout初期化に渡すkey_id
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// ゲートウェイ側の注文を作成してorder_idを返す。
// amountPaiseは最小通貨単位（INRならpaise）。
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order create: no order id in response")
	}

	return id, nil
}

// HMAC-SHA256（orderId|paymentId、key_secret鍵）の署名検証。
func (g *RazorpayGateway) VerifySignature(gatewayOrderID string, paymentID string, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.keySecret)
}
