package imaging

import (
	"image"
	"sync"
)

// Batch runs stream many same-sized pages through conversion, so scratch
// *image.RGBA allocations are recycled per size instead of churning the GC.
type rgbaPool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

var globalPool = &rgbaPool{
	pools: make(map[string]*sync.Pool),
}

// GetRGBA returns a scratch *image.RGBA for the given rectangle. The pixels
// may hold stale data; callers must overwrite the full rect.
func GetRGBA(rect image.Rectangle) *image.RGBA {
	return globalPool.get(rect)
}

// PutRGBA hands an image back for reuse. The caller must not touch it
// afterwards.
func PutRGBA(img *image.RGBA) {
	globalPool.put(img)
}

func (p *rgbaPool) get(rect image.Rectangle) *image.RGBA {
	key := rect.String()

	p.mu.RLock()
	pool := p.pools[key]
	p.mu.RUnlock()
	if pool == nil {
		pool = p.sizePool(key, rect)
	}

	return pool.Get().(*image.RGBA)
}

// sizePool creates the per-size pool on first use, re-checking under the
// write lock since another conversion may have raced here.
func (p *rgbaPool) sizePool(key string, rect image.Rectangle) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool := p.pools[key]
	if pool == nil {
		pool = &sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		}
		p.pools[key] = pool
	}
	return pool
}

func (p *rgbaPool) put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool := p.pools[img.Rect.String()]
	p.mu.RUnlock()

	// images of a size never requested are simply dropped
	if pool != nil {
		pool.Put(img)
	}
}
