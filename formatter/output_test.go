package formatter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/ip-filter/ipaddr"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.70.44.170", Format(ipaddr.Address{1, 70, 44, 170}))
	assert.Equal(t, "0.0.0.0", Format(ipaddr.Address{}))
	assert.Equal(t, "10.0.100.255", Format(ipaddr.Address{10, 0, 100, 255}))
}

func TestWriteAddresses(t *testing.T) {
	var buf bytes.Buffer
	addrs := ipaddr.Collection{{46, 70, 225, 39}, {1, 1, 234, 8}}
	require.NoError(t, WriteAddresses(&buf, addrs, nil))
	assert.Equal(t, "46.70.225.39\n1.1.234.8\n", buf.String())
}

func TestWriteAddressesWithNames(t *testing.T) {
	var buf bytes.Buffer
	addrs := ipaddr.Collection{{46, 70, 225, 39}, {1, 1, 234, 8}}
	names := map[ipaddr.Address]string{{46, 70, 225, 39}: "host.example."}
	require.NoError(t, WriteAddresses(&buf, addrs, names))
	assert.Equal(t, "46.70.225.39\thost.example.\n1.1.234.8\n", buf.String())
}

func TestWriteAddressesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAddresses(&buf, nil, nil))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteAddressesError(t *testing.T) {
	err := WriteAddresses(failingWriter{}, ipaddr.Collection{{1, 2, 3, 4}}, nil)
	assert.EqualError(t, err, "disk full")
}
