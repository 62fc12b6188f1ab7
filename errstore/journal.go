package errstore

const (
	blockHeaderSize = 64
	layoutVersion   = 1
)

// block wraps one Flash sector: a 64-byte header followed by as many
// 64-byte data objects as fit.
type block struct {
	flash   Flash
	objects int // number of 64-byte data-object slots after the header
}

func newBlock(f Flash) *block {
	return &block{flash: f, objects: (f.Size() - blockHeaderSize) / RecordSize}
}

func (b *block) headerLayoutVersion() byte {
	var hdr [1]byte
	b.flash.Read(0, hdr[:])
	return hdr[0]
}

// ensureLayout erases and reinitializes the block if its header layout
// version doesn't match, discarding old data deliberately (a migration
// strategy, not a bug).
func (b *block) ensureLayout() {
	if b.headerLayoutVersion() == layoutVersion {
		return
	}
	b.flash.Erase()
	b.flash.Program(0, []byte{layoutVersion})
}

func (b *block) objectOffset(i int) int { return blockHeaderSize + i*RecordSize }

func (b *block) statusOf(i int) byte {
	var s [1]byte
	b.flash.Read(b.objectOffset(i), s[:])
	return s[0]
}

// counts returns the allocated and deleted object counts for this block.
func (b *block) counts() (allocated, deleted int) {
	for i := 0; i < b.objects; i++ {
		s := b.statusOf(i)
		if isAllocated(s) {
			allocated++
		}
		if isDeleted(s) {
			deleted++
		}
	}
	return
}

func (b *block) full() bool {
	allocated, _ := b.counts()
	return allocated >= b.objects
}

// append allocates the next free slot in three flash programs: allocate,
// write payload, mark valid — matching the original firmware's three-phase
// write so a power loss mid-write leaves a detectable, non-readable state.
func (b *block) append(r Record) bool {
	allocated, _ := b.counts()
	if allocated >= b.objects {
		return false
	}
	idx := allocated
	off := b.objectOffset(idx)

	b.flash.Program(off, []byte{0xFF &^ statusBitAllocated})

	var body [recordBodySize]byte
	r.encodeBody(body[:])
	b.flash.Program(off+1, body[:])

	b.flash.Program(off, []byte{0xFF &^ statusBitAllocated &^ statusBitValid})
	return true
}

// markDeleted clears the Deleted bit (bit 5) of the status byte at index.
func (b *block) markDeleted(i int) {
	off := b.objectOffset(i)
	b.flash.Program(off, []byte{0xFF &^ statusBitDeleted})
}

// readLive returns the n-th live (allocated, not deleted) record in this
// block, skipping leading deleted entries, following the original's
// "skip the first `deleted` objects, the next allocated-deleted are live"
// walk.
func (b *block) readLive(n int) (Record, bool) {
	seen := 0
	for i := 0; i < b.objects; i++ {
		s := b.statusOf(i)
		if !isAllocated(s) {
			continue
		}
		if isDeleted(s) {
			continue
		}
		if seen == n {
			var body [recordBodySize]byte
			b.flash.Read(b.objectOffset(i)+1, body[:])
			return decodeRecordBody(body[:]), true
		}
		seen++
	}
	return Record{}, false
}

func (b *block) clearAll() {
	for i := 0; i < b.objects; i++ {
		s := b.statusOf(i)
		if isAllocated(s) && !isDeleted(s) {
			b.markDeleted(i)
		}
	}
}
