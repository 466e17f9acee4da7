package transaction

import (
	"testing"

	"github.com/certen-labs/objectchain/pkg/committee"
	"github.com/certen-labs/objectchain/pkg/crypto/authsig"
	"github.com/certen-labs/objectchain/pkg/crypto/sendersig"
	"github.com/certen-labs/objectchain/pkg/types"
)

func objRef(b byte) types.ObjectRef {
	var id types.ObjectID
	id[0] = b
	return types.ObjectRef{ObjectID: id, SequenceNumber: 1, Digest: types.ObjectDigestMin}
}

func newSignedTx(t *testing.T) (*Transaction, sendersig.Signature) {
	t.Helper()
	pub, priv, err := sendersig.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	sender := sendersig.DeriveAddress(pub)
	data := types.NewTransferObject(sender, types.ZeroAddress, objRef(1), objRef(2), 1, 100)
	dataBytes, err := data.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes failed: %v", err)
	}
	sig := sendersig.Sign(dataBytes, priv)
	return NewTransaction(NewSenderSignedData(data, sig)), sig
}

func newTestCommittee(t *testing.T, n int) (*committee.Committee, []committee.AuthorityName, []*authsig.PrivateKey) {
	t.Helper()
	rights := make(map[committee.AuthorityName]committee.StakeUnit, n)
	var names []committee.AuthorityName
	var keys []*authsig.PrivateKey
	for i := 0; i < n; i++ {
		sk, pk, err := authsig.GenerateKeyPair()
		if err != nil {
			t.Fatalf("GenerateKeyPair failed: %v", err)
		}
		var name committee.AuthorityName
		copy(name[:], pk.Bytes())
		rights[name] = 10
		names = append(names, name)
		keys = append(keys, sk)
	}
	return committee.New(1, rights), names, keys
}

func TestTransactionVerifySenderSignature(t *testing.T) {
	tx, _ := newSignedTx(t)
	if err := tx.Verify(); err != nil {
		t.Errorf("Verify failed for validly signed transaction: %v", err)
	}
}

func TestTransactionVerifyRejectsTamperedData(t *testing.T) {
	tx, _ := newSignedTx(t)
	tx.SignedData.Data.GasBudget += 1 // tamper after signing
	if err := tx.Verify(); err == nil {
		t.Error("expected Verify to fail for tampered transaction data")
	}
}

func TestDigestIsMemoizedAndStable(t *testing.T) {
	tx, _ := newSignedTx(t)
	d1, err := tx.Digest()
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	d2, err := tx.Digest()
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if d1 != d2 {
		t.Error("Digest returned different values across calls")
	}
}

func TestSignedTransactionVerify(t *testing.T) {
	tx, _ := newSignedTx(t)
	c, names, keys := newTestCommittee(t, 1)

	signed, err := NewSignedTransaction(c.Epoch(), tx, names[0], keys[0])
	if err != nil {
		t.Fatalf("NewSignedTransaction failed: %v", err)
	}
	if err := signed.Verify(c); err != nil {
		t.Errorf("Verify failed for validly signed transaction: %v", err)
	}
}

func TestSignedTransactionVerifyRejectsUnknownAuthority(t *testing.T) {
	tx, _ := newSignedTx(t)
	c, _, _ := newTestCommittee(t, 1)
	outsiderSk, outsiderPk, err := authsig.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	var outsiderName committee.AuthorityName
	copy(outsiderName[:], outsiderPk.Bytes())

	signed, err := NewSignedTransaction(c.Epoch(), tx, outsiderName, outsiderSk)
	if err != nil {
		t.Fatalf("NewSignedTransaction failed: %v", err)
	}
	if err := signed.Verify(c); err == nil {
		t.Error("expected Verify to reject an authority outside the committee")
	}
}

func TestChangeEpochBypassesSenderSignature(t *testing.T) {
	c, names, keys := newTestCommittee(t, 1)
	signed, err := NewChangeEpochSignedTransaction(c.Epoch(), 2, 10, 5, names[0], keys[0])
	if err != nil {
		t.Fatalf("NewChangeEpochSignedTransaction failed: %v", err)
	}
	if err := signed.Verify(c); err != nil {
		t.Errorf("Verify failed for system transaction: %v", err)
	}
}

func TestTransactionEqualIgnoresCachedFields(t *testing.T) {
	tx, _ := newSignedTx(t)
	clone := NewTransaction(tx.SignedData)
	if !tx.Equal(clone) {
		t.Error("expected Transactions built from the same SignedData to be Equal")
	}
	// Force clone's digest to memoize; the cached value must not affect Equal.
	if _, err := clone.Digest(); err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if !tx.Equal(clone) {
		t.Error("Equal must ignore the memoized digest")
	}

	other, _ := newSignedTx(t)
	if tx.Equal(other) {
		t.Error("Transactions signed over different data must not be Equal")
	}
}

func TestSignedTransactionEqualIgnoresSenderSignatureBytes(t *testing.T) {
	tx, _ := newSignedTx(t)
	c, names, keys := newTestCommittee(t, 1)
	signed, err := NewSignedTransaction(c.Epoch(), tx, names[0], keys[0])
	if err != nil {
		t.Fatalf("NewSignedTransaction failed: %v", err)
	}

	// Re-sign the same transaction data under a different sender keypair,
	// which guarantees different sender signature bytes. The logical
	// transaction data is identical, so the two SignedTransactions must
	// still compare Equal.
	_, priv, err := sendersig.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	dataBytes, err := tx.SignedData.Data.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes failed: %v", err)
	}
	reSig := sendersig.Sign(dataBytes, priv)
	retagged := NewTransaction(NewSenderSignedData(tx.SignedData.Data, reSig))
	resigned, err := NewSignedTransaction(c.Epoch(), retagged, names[0], keys[0])
	if err != nil {
		t.Fatalf("NewSignedTransaction failed: %v", err)
	}

	if !signed.Equal(resigned) {
		t.Error("expected SignedTransactions over the same transaction data to be Equal despite differing sender signature bytes")
	}

	otherAuthorityC, otherNames, otherKeys := newTestCommittee(t, 1)
	differentAuthority, err := NewSignedTransaction(otherAuthorityC.Epoch(), tx, otherNames[0], otherKeys[0])
	if err != nil {
		t.Fatalf("NewSignedTransaction failed: %v", err)
	}
	if signed.Equal(differentAuthority) {
		t.Error("SignedTransactions countersigned by different authorities must not be Equal")
	}
}

func TestCertifiedTransactionEqualIsStructuralOnSignedDataAndBitmap(t *testing.T) {
	tx, _ := newSignedTx(t)
	c, names, keys := newTestCommittee(t, 3)

	sig0 := keys[0].Sign(authsig.DomainTransaction, func() []byte {
		d, err := tx.SignedData.Digest()
		if err != nil {
			t.Fatalf("Digest failed: %v", err)
		}
		return d[:]
	}())
	bitmap, ok := committee.BitmapFromAuthorities(c, []committee.AuthorityName{names[0]})
	if !ok {
		t.Fatalf("BitmapFromAuthorities failed")
	}

	cert1 := NewCertifiedTransaction(tx.SignedData, AuthorityStrongQuorumSignInfo{
		Epoch:              c.Epoch(),
		SignersBitmap:      bitmap,
		AggregateSignature: sig0,
	})
	// A second certificate over the same signed data and the same signer
	// bitmap, but a different (here: identical-but-distinct-instance)
	// aggregate signature value, must still compare Equal: the rule is
	// structural on signed_data and the bitmap, not the signature value.
	sig0Copy, err := authsig.SignatureFromBytes(sig0.Bytes())
	if err != nil {
		t.Fatalf("SignatureFromBytes failed: %v", err)
	}
	cert2 := NewCertifiedTransaction(tx.SignedData, AuthorityStrongQuorumSignInfo{
		Epoch:              c.Epoch(),
		SignersBitmap:      bitmap,
		AggregateSignature: sig0Copy,
	})
	if !cert1.Equal(cert2) {
		t.Error("expected CertifiedTransactions over the same signed data and bitmap to be Equal")
	}

	widerBitmap, ok := committee.BitmapFromAuthorities(c, []committee.AuthorityName{names[0], names[1]})
	if !ok {
		t.Fatalf("BitmapFromAuthorities failed")
	}
	cert3 := NewCertifiedTransaction(tx.SignedData, AuthorityStrongQuorumSignInfo{
		Epoch:              c.Epoch(),
		SignersBitmap:      widerBitmap,
		AggregateSignature: sig0Copy,
	})
	if cert1.Equal(cert3) {
		t.Error("CertifiedTransactions with different signer bitmaps must not be Equal")
	}
}
