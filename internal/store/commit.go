package store

import (
	"encoding/hex"
	"fmt"
	"time"

	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// DateLayout is the timestamp format used in the log and as hash input.
const DateLayout = "Mon Jan 02 15:04 2006 -0700"

// Commit is an immutable snapshot of a branch's staged objects.
type Commit struct {
	objects   files
	message   string
	timestamp time.Time
	mh        multihash.Multihash
	hash      string
}

// NewCommit snapshots objects under message at ts. The hash covers only the
// formatted timestamp and the message, so two commits made within the same
// minute with the same message share a hash.
func NewCommit(objects []File, message string, ts time.Time) (*Commit, error) {
	mh, err := multihash.Sum([]byte(ts.Format(DateLayout)+message), multihash.SHA1, -1)
	if err != nil {
		return nil, fmt.Errorf("multihash: %w", err)
	}
	dec, err := multihash.Decode(mh)
	if err != nil {
		return nil, fmt.Errorf("decode multihash: %w", err)
	}
	return &Commit{
		objects:   files(objects).clone(),
		message:   message,
		timestamp: ts,
		mh:        mh,
		hash:      hex.EncodeToString(dec.Digest),
	}, nil
}

// Hash returns the hex SHA-1 digest identifying the commit.
func (c *Commit) Hash() string { return c.hash }

func (c *Commit) Message() string { return c.message }

func (c *Commit) Timestamp() time.Time { return c.timestamp }

// Date returns the timestamp formatted with DateLayout.
func (c *Commit) Date() string { return c.timestamp.Format(DateLayout) }

// Objects returns a copy of the snapshot.
func (c *Commit) Objects() []File { return c.objects.clone() }

// CID returns a CIDv1 (raw codec) wrapping the commit's SHA-1 multihash.
func (c *Commit) CID() gocid.Cid { return gocid.NewCidV1(gocid.Raw, c.mh) }

// CIDString returns the base32lower encoding of CID.
func (c *Commit) CIDString() string {
	encoded, _ := multibase.Encode(multibase.Base32, c.CID().Bytes())
	return encoded
}

// matches reports whether ref names this commit, either as the hex hash or
// as a multibase-encoded CID.
func (c *Commit) matches(ref string) bool {
	if ref == c.hash {
		return true
	}
	hash, ok := hashFromCID(ref)
	return ok && hash == c.hash
}

// hashFromCID extracts the hex SHA-1 digest from a multibase CID string.
func hashFromCID(ref string) (string, bool) {
	_, raw, err := multibase.Decode(ref)
	if err != nil {
		return "", false
	}
	c, err := gocid.Cast(raw)
	if err != nil {
		return "", false
	}
	dec, err := multihash.Decode(c.Hash())
	if err != nil || dec.Code != multihash.SHA1 {
		return "", false
	}
	return hex.EncodeToString(dec.Digest), true
}
