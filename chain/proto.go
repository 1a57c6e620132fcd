package chain

import "fmt"

// Hand-rolled framing for the handful of protobuf messages the ABCI query
// paths expect. The messages are two-field wrappers around strings/bytes,
// which is not worth a codegen dependency.

const (
	wireVarint = 0
	wireBytes  = 2
)

func appendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func appendBytesField(buf []byte, field int, b []byte) []byte {
	buf = appendUvarint(buf, uint64(field)<<3|wireBytes)
	buf = appendUvarint(buf, uint64(len(b)))
	return append(buf, b...)
}

// encodeSmartContractStateRequest frames a
// cosmwasm.wasm.v1.QuerySmartContractStateRequest.
func encodeSmartContractStateRequest(address string, queryData []byte) []byte {
	buf := appendBytesField(nil, 1, []byte(address))
	return appendBytesField(buf, 2, queryData)
}

// encodeSpendableBalanceRequest frames a
// cosmos.bank.v1beta1.QuerySpendableBalanceByDenomRequest.
func encodeSpendableBalanceRequest(address, denom string) []byte {
	buf := appendBytesField(nil, 1, []byte(address))
	return appendBytesField(buf, 2, []byte(denom))
}

// fieldBytes scans msg for the first length-delimited occurrence of field.
func fieldBytes(msg []byte, field int) ([]byte, error) {
	pos := 0
	for pos < len(msg) {
		tag, n, err := readUvarint(msg[pos:])
		if err != nil {
			return nil, err
		}
		pos += n

		num := int(tag >> 3)
		switch tag & 0x7 {
		case wireVarint:
			_, n, err := readUvarint(msg[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
		case wireBytes:
			length, n, err := readUvarint(msg[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			if pos+int(length) > len(msg) {
				return nil, fmt.Errorf("field %d truncated", num)
			}
			if num == field {
				return msg[pos : pos+int(length)], nil
			}
			pos += int(length)
		default:
			return nil, fmt.Errorf("unsupported wire type %d for field %d", tag&0x7, num)
		}
	}
	return nil, fmt.Errorf("field %d not found", field)
}

// decodeSmartContractStateResponse unwraps the data bytes of a
// cosmwasm.wasm.v1.QuerySmartContractStateResponse.
func decodeSmartContractStateResponse(msg []byte) ([]byte, error) {
	return fieldBytes(msg, 1)
}

// decodeSpendableBalanceResponse unwraps the Coin inside a
// cosmos.bank.v1beta1.QuerySpendableBalanceByDenomResponse.
func decodeSpendableBalanceResponse(msg []byte) (denom, amount string, err error) {
	coin, err := fieldBytes(msg, 1)
	if err != nil {
		return "", "", err
	}
	denomBytes, err := fieldBytes(coin, 1)
	if err != nil {
		return "", "", err
	}
	amountBytes, err := fieldBytes(coin, 2)
	if err != nil {
		return "", "", err
	}
	return string(denomBytes), string(amountBytes), nil
}

func readUvarint(buf []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range buf {
		if i >= 10 {
			break
		}
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("truncated varint")
}
