package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/yourusername/egtb/internal/position"
)

// File name suffixes of the raw persisted arrays. The files are the
// bare bytes of V and S, N each, with no header: N is derivable from
// the piece codes in the name.
const (
	tableSuffix  = ".table.bin"
	statusSuffix = ".status.bin"

	archiveTableSuffix  = ".table.zst"
	archiveStatusSuffix = ".status.zst"
)

var (
	// ErrTableMissing is returned when a table file is absent; callers
	// may fall back to rebuilding.
	ErrTableMissing = errors.New("table file missing")
	// ErrShortRead is returned when a table file has the wrong length.
	ErrShortRead = errors.New("table file has wrong length")
)

// Save writes the value and status arrays in the raw format.
func (t *Table) Save(dir string) error {
	id := t.spec.ID()
	if err := writeArray(filepath.Join(dir, id+tableSuffix), int8Bytes(t.v)); err != nil {
		return err
	}
	if err := writeArray(filepath.Join(dir, id+statusSuffix), t.s); err != nil {
		return err
	}
	t.log.Info().Str("table", id).Str("dir", dir).Msg("saved table")
	return nil
}

// Load reads a table from its raw files. The status array is optional
// for pure value queries; withStatus requests it.
func Load(spec *position.Spec, opts Options, withStatus bool) (*Table, error) {
	opts = opts.withDefaults()
	n := spec.Positions()
	id := spec.ID()

	v, err := readArray(filepath.Join(opts.Dir, id+tableSuffix), n)
	if err != nil {
		return nil, err
	}
	t := &Table{
		spec: spec,
		n:    n,
		v:    bytesInt8(v),
		opts: opts,
		log:  opts.Logger,
	}
	if withStatus {
		s, err := readArray(filepath.Join(opts.Dir, id+statusSuffix), n)
		if err != nil {
			return nil, err
		}
		t.s = s
	}
	t.log.Info().Str("table", id).Bool("status", withStatus).Msg("loaded table")
	return t, nil
}

func writeArray(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readArray(path string, n int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTableMissing, filepath.Base(path))
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %s holds %d bytes, want %d",
			ErrShortRead, filepath.Base(path), len(data), n)
	}
	return data, nil
}

func int8Bytes(v []int8) []byte {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = byte(x)
	}
	return b
}

func bytesInt8(b []byte) []int8 {
	v := make([]int8, len(b))
	for i, x := range b {
		v[i] = int8(x)
	}
	return v
}

// Archive format: zstd-compressed frames for cold storage. The
// uncompressed payload is a small header followed by the raw array;
// the raw .bin files stay the canonical interchange format.
const (
	archiveMagic   = "EGTB"
	archiveVersion = uint8(1)
	// Magic(4) + Version(1) + Reserved(3) + Length(8) + Checksum(4)
	archiveHeaderSize = 20
)

// SaveArchive writes zstd-compressed copies of both arrays.
func (t *Table) SaveArchive(dir string) error {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	defer encoder.Close()

	id := t.spec.ID()
	if err := writeArchive(encoder, filepath.Join(dir, id+archiveTableSuffix), int8Bytes(t.v)); err != nil {
		return err
	}
	if err := writeArchive(encoder, filepath.Join(dir, id+archiveStatusSuffix), t.s); err != nil {
		return err
	}
	t.log.Info().Str("table", id).Msg("saved table archives")
	return nil
}

// LoadArchive reads a table from its compressed archives.
func LoadArchive(spec *position.Spec, opts Options, withStatus bool) (*Table, error) {
	opts = opts.withDefaults()
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	n := spec.Positions()
	id := spec.ID()
	v, err := readArchive(decoder, filepath.Join(opts.Dir, id+archiveTableSuffix), n)
	if err != nil {
		return nil, err
	}
	t := &Table{
		spec: spec,
		n:    n,
		v:    bytesInt8(v),
		opts: opts,
		log:  opts.Logger,
	}
	if withStatus {
		s, err := readArchive(decoder, filepath.Join(opts.Dir, id+archiveStatusSuffix), n)
		if err != nil {
			return nil, err
		}
		t.s = s
	}
	return t, nil
}

func writeArchive(encoder *zstd.Encoder, path string, payload []byte) error {
	data := make([]byte, archiveHeaderSize+len(payload))
	copy(data[0:4], archiveMagic)
	data[4] = archiveVersion
	binary.BigEndian.PutUint64(data[8:16], uint64(len(payload)))
	binary.BigEndian.PutUint32(data[16:20], crc32.ChecksumIEEE(payload))
	copy(data[archiveHeaderSize:], payload)

	compressed := encoder.EncodeAll(data, nil)
	if err := os.WriteFile(path, compressed, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readArchive(decoder *zstd.Decoder, path string, n int) ([]byte, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTableMissing, filepath.Base(path))
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", filepath.Base(path), err)
	}
	if len(data) < archiveHeaderSize || string(data[0:4]) != archiveMagic {
		return nil, fmt.Errorf("%s: not a table archive", filepath.Base(path))
	}
	if data[4] != archiveVersion {
		return nil, fmt.Errorf("%s: unsupported archive version %d", filepath.Base(path), data[4])
	}
	length := binary.BigEndian.Uint64(data[8:16])
	payload := data[archiveHeaderSize:]
	if uint64(len(payload)) != length || len(payload) != n {
		return nil, fmt.Errorf("%w: %s payload %d bytes, want %d",
			ErrShortRead, filepath.Base(path), len(payload), n)
	}
	if crc32.ChecksumIEEE(payload) != binary.BigEndian.Uint32(data[16:20]) {
		return nil, fmt.Errorf("%s: checksum mismatch", filepath.Base(path))
	}
	return payload, nil
}
