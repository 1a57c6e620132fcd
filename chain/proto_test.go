package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartContractStateRequestFraming(t *testing.T) {
	msg := encodeSmartContractStateRequest("juno1pool", []byte(`{"pool":{}}`))

	address, err := fieldBytes(msg, 1)
	require.NoError(t, err)
	assert.Equal(t, "juno1pool", string(address))

	query, err := fieldBytes(msg, 2)
	require.NoError(t, err)
	assert.Equal(t, `{"pool":{}}`, string(query))
}

func TestSpendableBalanceResponseDecoding(t *testing.T) {
	coin := appendBytesField(nil, 1, []byte("ujuno"))
	coin = appendBytesField(coin, 2, []byte("42"))
	msg := appendBytesField(nil, 1, coin)

	denom, amount, err := decodeSpendableBalanceResponse(msg)
	require.NoError(t, err)
	assert.Equal(t, "ujuno", denom)
	assert.Equal(t, "42", amount)
}

func TestFieldBytesSkipsVarints(t *testing.T) {
	// field 1 varint, field 2 bytes
	msg := appendUvarint(nil, 1<<3|wireVarint)
	msg = appendUvarint(msg, 300)
	msg = appendBytesField(msg, 2, []byte("payload"))

	value, err := fieldBytes(msg, 2)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(value))
}

func TestFieldBytesMissingField(t *testing.T) {
	msg := appendBytesField(nil, 1, []byte("only"))
	_, err := fieldBytes(msg, 7)
	assert.Error(t, err)
}

func TestFieldBytesTruncated(t *testing.T) {
	msg := appendBytesField(nil, 1, []byte("payload"))
	_, err := fieldBytes(msg[:len(msg)-3], 1)
	assert.Error(t, err)
}
