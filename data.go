package tmx

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	tmxerrors "github.com/jacoelho/tmx/errors"
)

// decodeTiles decodes the text payload of a data or chunk element holding
// count cells. Compressed payloads never inflate past count cells.
func decodeTiles(text, encoding, compression string, count int) ([]LayerTile, error) {
	switch encoding {
	case "csv":
		if compression != "" {
			return nil, tmxerrors.Newf(tmxerrors.InvalidTileData, "csv data cannot use %s compression", compression)
		}
		return decodeCSV(text)
	case "base64":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, tmxerrors.Wrap(tmxerrors.Base64Decoding, err, "tile data is not valid base64")
		}
		data, err := decompress(raw, compression, 4*count)
		if err != nil {
			return nil, err
		}
		return decodeBinary(data)
	default:
		return nil, tmxerrors.Newf(tmxerrors.InvalidTileData, "unknown tile data encoding %q", encoding)
	}
}

func decodeCSV(text string) ([]LayerTile, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	tiles := make([]LayerTile, 0, len(fields))
	for _, f := range fields {
		raw, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, tmxerrors.Wrap(tmxerrors.InvalidTileData, err, "csv tile data has an invalid gid")
		}
		tiles = append(tiles, newLayerTile(uint32(raw)))
	}
	return tiles, nil
}

func decodeBinary(data []byte) ([]LayerTile, error) {
	if len(data)%4 != 0 {
		return nil, tmxerrors.Newf(tmxerrors.InvalidTileData, "binary tile data length %d is not a multiple of 4", len(data))
	}
	tiles := make([]LayerTile, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		tiles = append(tiles, newLayerTile(binary.LittleEndian.Uint32(data[i:])))
	}
	return tiles, nil
}

// minZstdMemory keeps the zstd decoder able to open frames whose window
// exceeds a tiny layer.
const minZstdMemory = 1 << 20

// decompress inflates raw, failing once the output exceeds limit bytes.
func decompress(raw []byte, compression string, limit int) ([]byte, error) {
	switch compression {
	case "":
		return raw, nil
	case "gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, tmxerrors.Wrap(tmxerrors.Decompressing, err, "gzip tile data")
		}
		return readLimitedClose(zr, limit, "gzip tile data")
	case "zlib":
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, tmxerrors.Wrap(tmxerrors.Decompressing, err, "zlib tile data")
		}
		return readLimitedClose(zr, limit, "zlib tile data")
	case "zstd":
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(max(limit, minZstdMemory))+1),
		)
		if err != nil {
			return nil, tmxerrors.Wrap(tmxerrors.Decompressing, err, "zstd tile data")
		}
		defer dec.Close()
		out, err := dec.DecodeAll(raw, nil)
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) || (err == nil && len(out) > limit) {
			return nil, tmxerrors.Newf(tmxerrors.InvalidTileData, "zstd tile data inflates past %d bytes", limit)
		}
		if err != nil {
			return nil, tmxerrors.Wrap(tmxerrors.Decompressing, err, "zstd tile data")
		}
		return out, nil
	default:
		return nil, tmxerrors.Newf(tmxerrors.InvalidTileData, "unknown tile data compression %q", compression)
	}
}

func readLimitedClose(rc io.ReadCloser, limit int, what string) ([]byte, error) {
	out, err := readLimited(rc, limit, what)
	if closeErr := rc.Close(); closeErr != nil && err == nil {
		return nil, tmxerrors.Wrap(tmxerrors.Decompressing, closeErr, what)
	}
	return out, err
}

// readLimited reads r to the end, reading at most limit+1 bytes.
func readLimited(r io.Reader, limit int, what string) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, tmxerrors.Wrap(tmxerrors.Decompressing, err, what)
	}
	if len(out) > limit {
		return nil, tmxerrors.Newf(tmxerrors.InvalidTileData, "%s inflates past %d bytes", what, limit)
	}
	return out, nil
}
