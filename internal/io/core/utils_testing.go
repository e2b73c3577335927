package core

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"io"
	"math/rand/v2"
	"sort"
	"sync"
)

// ChannelReader hands out previously written chunks one Read at a time, ending with the error given to Fail.
type ChannelReader struct {
	buf  []mo.Result[[]byte]
	lock *sync.Mutex
	cond *sync.Cond
}

func NewChannelReader() *ChannelReader {
	mutex := sync.Mutex{}
	cond := sync.NewCond(&mutex)
	return &ChannelReader{lock: &mutex, cond: cond}
}

func (r *ChannelReader) Fail(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.cond.Broadcast()

	r.buf = append(r.buf, mo.Err[[]byte](err))
}

func (r *ChannelReader) Write(p []byte) (n int, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.cond.Broadcast()

	r.buf = append(r.buf, mo.Ok(append([]byte{}, p...)))

	return len(p), nil
}

func (r *ChannelReader) WriteString(p string) {
	_, _ = r.Write([]byte(p))
}

func (r *ChannelReader) WriteInRandomChunks(p []byte) {
	for _, s := range RandomlySlice(p) {
		_, _ = r.Write(s)
	}
}

// RandomlySlice cuts p into consecutive non-empty chunks of random length.
func RandomlySlice(p []byte) [][]byte {
	if len(p) == 0 {
		return [][]byte{}
	} else if len(p) == 1 {
		return [][]byte{p}
	}

	var indices []int
	for i := 0; i < len(p)-1; i += rand.IntN(len(p)-i-1) + 1 {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	ranges := lo.Zip2(indices, append(append([]int{}, indices...), len(p))[1:])
	return lo.Map(ranges, func(pair lo.Tuple2[int, int], _ int) []byte {
		return p[pair.A:pair.B]
	})
}

func (r *ChannelReader) Read(p []byte) (n int, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for len(r.buf) == 0 {
		r.cond.Wait()
	}

	result := r.buf[0]
	buffer, e := result.Get()

	// clear the buffer only if it not []{EOF}
	if e != io.EOF {
		r.buf = r.buf[1:]
	}

	if e != nil {
		return 0, e
	}

	if len(buffer) > len(p) {
		rest := mo.Ok(buffer[len(p):])
		r.buf = append([]mo.Result[[]byte]{rest}, r.buf...)
	}

	return copy(p, buffer), nil
}
