package authmsg

import (
	"strconv"
	"testing"

	"github.com/moov-io/iso8583"
	"github.com/moov-io/iso8583/specs"
	"github.com/stretchr/testify/require"
)

func TestPack_RoundTrip(t *testing.T) {
	raw, err := Pack(Request{
		PAN:        "4532015112830366",
		ExpiryYYMM: "2912",
		Amount:     100,
		Currency:   "840",
		STAN:       "000001",
	})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	msg := iso8583.NewMessage(specs.Spec87ASCII)
	require.NoError(t, msg.Unpack(raw))

	mti, err := msg.GetMTI()
	require.NoError(t, err)
	require.Equal(t, "0100", mti)

	pan, err := msg.GetString(2)
	require.NoError(t, err)
	require.Equal(t, "4532015112830366", pan)

	exp, err := msg.GetString(14)
	require.NoError(t, err)
	require.Equal(t, "2912", exp)

	amountStr, err := msg.GetString(4)
	require.NoError(t, err)
	amount, err := strconv.Atoi(amountStr)
	require.NoError(t, err)
	require.Equal(t, 100, amount)
}

func TestPack_RandomSTAN(t *testing.T) {
	raw, err := Pack(Request{
		PAN:        "4532015112830366",
		ExpiryYYMM: "2912",
		Amount:     100,
	})
	require.NoError(t, err)

	msg := iso8583.NewMessage(specs.Spec87ASCII)
	require.NoError(t, msg.Unpack(raw))

	stan, err := msg.GetString(11)
	require.NoError(t, err)
	require.NotEmpty(t, stan)
}

func TestPack_RejectsBadInput(t *testing.T) {
	_, err := Pack(Request{PAN: "", ExpiryYYMM: "2912"})
	require.Error(t, err)

	_, err = Pack(Request{PAN: "4532a15112830366", ExpiryYYMM: "2912"})
	require.Error(t, err)

	_, err = Pack(Request{PAN: "4532015112830366", ExpiryYYMM: "2913"})
	require.Error(t, err)
}
