// Package merkle builds binary Merkle trees over SHA-1 digests.
//
// Leaves are SHA-1(leaf data). Each inner node is sha1.Combine(left, right),
// the SHA-1 of the two child digests concatenated. A level with an odd
// number of nodes pairs its last node with itself.
package merkle

import (
	"fmt"

	"github.com/backkem/sha1kit/pkg/sha1"
)

// Digest is a tree node value.
type Digest = [sha1.Size]byte

// Tree is an immutable Merkle tree. levels[0] holds the leaf digests and
// the last level holds only the root.
type Tree struct {
	levels [][]Digest
}

// Proof is an inclusion proof: the sibling digests from the leaf level up
// to, but excluding, the root.
type Proof struct {
	// Index is the position of the leaf.
	Index int

	// Leaves is the number of leaves in the tree the proof was taken from.
	// It fixes the shape of every level, including where a node was paired
	// with itself. The root does not commit to the leaf count, so a
	// verifier must check Leaves against the count it expects.
	Leaves int

	// Siblings holds one digest per level, leaf level first.
	Siblings []Digest
}

// NewTree builds a tree over leaf digests that have already been computed.
// The slice is copied.
func NewTree(leaves []Digest) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	level := make([]Digest, len(leaves))
	copy(level, leaves)

	t := &Tree{levels: [][]Digest{level}}
	for len(level) > 1 {
		next := make([]Digest, (len(level)+1)/2)
		for i := range next {
			left := &level[2*i]
			right := left
			if 2*i+1 < len(level) {
				right = &level[2*i+1]
			}
			next[i] = parent(left, right)
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

// RootFromDigests returns the root over leaf digests without keeping the tree.
func RootFromDigests(leaves []Digest) (Digest, error) {
	t, err := NewTree(leaves)
	if err != nil {
		return Digest{}, err
	}
	return t.Root(), nil
}

// Root returns the root digest.
func (t *Tree) Root() Digest {
	return t.levels[len(t.levels)-1][0]
}

// Leaves returns the number of leaves.
func (t *Tree) Leaves() int {
	return len(t.levels[0])
}

// Leaf returns the digest of leaf index.
func (t *Tree) Leaf(index int) (Digest, error) {
	if index < 0 || index >= t.Leaves() {
		return Digest{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, t.Leaves())
	}
	return t.levels[0][index], nil
}

// Depth returns the number of levels above the leaves.
func (t *Tree) Depth() int {
	return len(t.levels) - 1
}

// Proof returns the inclusion proof for leaf index.
func (t *Tree) Proof(index int) (Proof, error) {
	if index < 0 || index >= t.Leaves() {
		return Proof{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, t.Leaves())
	}

	p := Proof{Index: index, Leaves: t.Leaves(), Siblings: make([]Digest, 0, t.Depth())}
	i := index
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := i ^ 1
		if sibling >= len(level) {
			// Odd tail: the node is paired with itself.
			sibling = i
		}
		p.Siblings = append(p.Siblings, level[sibling])
		i /= 2
	}
	return p, nil
}

// Verify reports whether leaf data is included under root according to proof.
func Verify(root Digest, leaf []byte, proof Proof) bool {
	return VerifyDigest(root, sha1.Sum(leaf), proof)
}

// VerifyDigest is Verify for a leaf whose digest is already known.
//
// The proof must match the shape of a tree with proof.Leaves leaves: one
// sibling per level, and a sibling equal to the node itself only where the
// node is the unpaired tail of an odd-length level.
func VerifyDigest(root, leaf Digest, proof Proof) bool {
	if proof.Index < 0 || proof.Index >= proof.Leaves {
		return false
	}

	h := leaf
	i := proof.Index
	width := proof.Leaves
	for k := range proof.Siblings {
		if width == 1 {
			// More siblings than levels.
			return false
		}

		switch {
		case i^1 >= width:
			// Odd tail: paired with itself.
			if proof.Siblings[k] != h {
				return false
			}
			h = parent(&h, &h)
		case i%2 == 0:
			h = parent(&h, &proof.Siblings[k])
		default:
			h = parent(&proof.Siblings[k], &h)
		}
		i /= 2
		width = (width + 1) / 2
	}
	return width == 1 && h == root
}

func parent(left, right *Digest) Digest {
	p, err := sha1.Combine(left[:], right[:])
	if err != nil {
		// Both sides are fixed-size digests.
		panic(err)
	}
	return p
}
