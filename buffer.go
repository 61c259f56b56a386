package logring

import "sync"

// bufferPool menyimpan buffer frame agar Push tidak mengalokasi ulang setiap
// kali. Buffer yang lebih besar dari maxPooled tidak dikembalikan ke pool untuk
// menghindari menahan memori besar.
type bufferPool struct {
	pool sync.Pool
}

const maxPooled = 64 * 1024

// get mengambil buffer dengan panjang tepat n byte.
func (p *bufferPool) get(n int) []byte {
	if v, ok := p.pool.Get().(*[]byte); ok && cap(*v) >= n {
		return (*v)[:n]
	}
	return make([]byte, n)
}

// put mengembalikan buffer ke pool.
func (p *bufferPool) put(buf []byte) {
	if cap(buf) > maxPooled {
		return
	}
	buf = buf[:0]
	p.pool.Put(&buf)
}
