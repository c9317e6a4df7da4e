package trace

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/mem/cache"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func readAll(src Source) ([]cache.Access, error) {
	var accesses []cache.Access
	for {
		a, err := src.Next()
		if err == io.EOF {
			return accesses, nil
		}

		if err != nil {
			return accesses, err
		}

		accesses = append(accesses, a)
	}
}

var _ = Describe("Reader", func() {
	It("should parse instruction and data records", func() {
		r := NewReader("test", strings.NewReader("I 1f\nD 0x40\nD FFFFFFFF\n"))

		accesses, err := readAll(r)

		Expect(err).ToNot(HaveOccurred())
		Expect(accesses).To(Equal([]cache.Access{
			{Address: 0x1f, Kind: cache.Instruction},
			{Address: 0x40, Kind: cache.Data},
			{Address: 0xFFFFFFFF, Kind: cache.Data},
		}))
	})

	It("should treat address zero as a normal access", func() {
		r := NewReader("test", strings.NewReader("D 0\nD 0x0\n"))

		accesses, err := readAll(r)

		Expect(err).ToNot(HaveOccurred())
		Expect(accesses).To(HaveLen(2))
	})

	It("should skip blank lines and surrounding spaces", func() {
		r := NewReader("test", strings.NewReader("\n  I 10  \n\n\tD 20\n\n"))

		accesses, err := readAll(r)

		Expect(err).ToNot(HaveOccurred())
		Expect(accesses).To(HaveLen(2))
		Expect(r.Line()).To(Equal(5))
	})

	It("should return EOF on an empty trace", func() {
		r := NewReader("test", strings.NewReader(""))

		_, err := r.Next()

		Expect(err).To(Equal(io.EOF))
	})

	DescribeTable("malformed records",
		func(trace string, line int, token string) {
			r := NewReader("test", strings.NewReader(trace))

			_, err := readAll(r)

			var formatErr *FormatError
			Expect(errors.As(err, &formatErr)).To(BeTrue())
			Expect(formatErr.Line).To(Equal(line))
			Expect(formatErr.Token).To(Equal(token))
		},
		Entry("unknown kind", "I 0\nX 40\n", 2, "X"),
		Entry("lowercase kind", "d 40\n", 1, "d"),
		Entry("bad address", "D 0x4g\n", 1, "0x4g"),
		Entry("address too wide", "D 100000000\n", 1, "100000000"),
		Entry("missing address", "I 0\n\nD\n", 3, "D"),
		Entry("extra field", "D 40 50\n", 1, "D 40 50"),
	)

	It("should wrap read failures into a resource error", func() {
		r := NewReader("broken", failingReader{})

		_, err := r.Next()

		var resErr *ResourceError
		Expect(errors.As(err, &resErr)).To(BeTrue())
		Expect(resErr.Path).To(Equal("broken"))
		Expect(err.Error()).To(ContainSubstring("disk on fire"))
	})

	It("should open trace files", func() {
		path := filepath.Join(GinkgoT().TempDir(), "mem_trace.txt")
		Expect(os.WriteFile(path, []byte("I 0\nD 40\n"), 0o644)).To(Succeed())

		r, err := OpenFile(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		accesses, err := readAll(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(accesses).To(HaveLen(2))
	})

	It("should report a missing trace file", func() {
		_, err := OpenFile(filepath.Join(GinkgoT().TempDir(), "missing.txt"))

		var resErr *ResourceError
		Expect(errors.As(err, &resErr)).To(BeTrue())
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})
})
