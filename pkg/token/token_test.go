package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVoteSignatureRoundTrip(t *testing.T) {
	GenerateSecretKey()

	payload := TokenPayload{
		PairID:      "0190a1b2-0000-7000-8000-000000000001",
		QuestionAID: "q1",
		QuestionBID: "q2",
	}
	sig, err := GenerateVoteSignature(payload)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	require.True(t, ValidateVoteSignature(payload, sig))
}

func TestVoteSignatureRejectsTampering(t *testing.T) {
	GenerateSecretKey()

	payload := TokenPayload{PairID: "pair-1", QuestionAID: "q1", QuestionBID: "q2"}
	sig, err := GenerateVoteSignature(payload)
	require.NoError(t, err)

	// 篡改问题ID后签名必须失效
	tampered := payload
	tampered.QuestionAID = "q3"
	require.False(t, ValidateVoteSignature(tampered, sig))

	// 非法的Base64也必须被拒绝
	require.False(t, ValidateVoteSignature(payload, "not-base64!!"))
	require.False(t, ValidateVoteSignature(payload, ""))
}

func TestVoteSignatureChangesWithKey(t *testing.T) {
	payload := TokenPayload{PairID: "pair-1", QuestionAID: "q1", QuestionBID: "q2"}

	GenerateSecretKey()
	sig1, err := GenerateVoteSignature(payload)
	require.NoError(t, err)

	// 重新生成密钥后，旧签名不再有效
	GenerateSecretKey()
	require.False(t, ValidateVoteSignature(payload, sig1))
}
