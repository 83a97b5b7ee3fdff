package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// secretKey 是服务器启动时生成的32字节HMAC密钥。
// 密钥只存在于内存中，重启后旧签名全部失效，这正是临时配对所需要的语义。
var secretKey []byte

// TokenPayload 是被签名的数据。
// 它随 /pair 响应下发，并在 /vote 请求体中原样带回，
// 用于保证投票针对的确实是服务器发出的那一对问题。
type TokenPayload struct {
	PairID      string `json:"p"`
	QuestionAID string `json:"a"`
	QuestionBID string `json:"b"`
}

// GenerateSecretKey 生成一个密码学安全的随机密钥。必须在签发任何签名之前调用。
func GenerateSecretKey() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("HMAC密钥已成功生成。")
}

// computeSignature 对payload的JSON序列化结果计算HMAC-SHA256
func computeSignature(payload TokenPayload) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("无法序列化Token payload: %w", err)
	}
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	return mac.Sum(nil), nil
}

// GenerateVoteSignature 为payload生成Base64编码的HMAC签名。
func GenerateVoteSignature(payload TokenPayload) (string, error) {
	signature, err := computeSignature(payload)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(signature), nil
}

// ValidateVoteSignature 验证payload和签名是否匹配。
// 比较使用hmac.Equal以保持时间恒定，防止时序攻击。
func ValidateVoteSignature(payload TokenPayload, signatureB64 string) bool {
	expected, err := computeSignature(payload)
	if err != nil {
		return false
	}
	actual, err := base64.RawURLEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, actual)
}
