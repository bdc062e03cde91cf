package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_formatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 0, want: "0 Bytes"},
		{bytes: 512, want: "512 Bytes"},
		{bytes: 1024, want: "1 KB"},
		{bytes: 876544, want: "856 KB"},
		{bytes: 1258291, want: "1.2 MB"},
		{bytes: 5 * 1024 * 1024 * 1024, want: "5 GB"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, formatFileSize(tt.bytes))
	}
}

func Test_fileType(t *testing.T) {
	require.Equal(t, "XLSX", fileType("Budget.xlsx"))
	require.Equal(t, "MPP", fileType("planning.mpp"))
	require.Equal(t, "XLSX", fileType("Begroting"))
	require.Equal(t, "XLSX", fileType("Begroting."))
}
