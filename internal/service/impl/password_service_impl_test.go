package impl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastPasswords() *PasswordServiceImpl {
	return NewPasswordService(Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
}

func TestPasswordService_HashVerify(t *testing.T) {
	p := fastPasswords()

	h1, err := p.Hash("correct horse")
	require.NoError(t, err)
	h2, err := p.Hash("correct horse")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h1, "$argon2id$v=19$m=1024,t=1,p=1$"), h1)
	assert.NotEqual(t, h1, h2, "salt must differ")
	assert.True(t, p.Verify("correct horse", h1))
	assert.False(t, p.Verify("wrong horse", h1))
}

func TestPasswordService_VerifyUsesStoredParams(t *testing.T) {
	old := fastPasswords()
	h, err := old.Hash("pw123456")
	require.NoError(t, err)

	current := NewPasswordService(Argon2Params{Time: 2, Memory: 2048, Threads: 1, KeyLen: 32, SaltLen: 16})
	assert.True(t, current.Verify("pw123456", h))
}

func TestPasswordService_LegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("ieeesbouce"), 10)
	require.NoError(t, err)

	p := fastPasswords()
	assert.True(t, p.Verify("ieeesbouce", string(legacy)))
	assert.False(t, p.Verify("other", string(legacy)))
}

func TestPasswordService_Rejects(t *testing.T) {
	p := fastPasswords()
	_, err := p.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	for _, enc := range []string{"", "plain", "$argon2id$v=19$broken", "$argon2id$v=18$m=1,t=1,p=1$AAAA$AAAA"} {
		assert.False(t, p.Verify("x", enc), enc)
	}
}
