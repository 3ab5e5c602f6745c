// Command testhelper performs encryption operations for cross-implementation
// testing. Inputs arrive as command arguments or hex on stdin; results are
// written to stdout as JSON.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	encryption "github.com/friedger/stacks.js"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: testhelper <command> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "derive-key":
		deriveKey(ctx)
	case "make-keypair":
		makeKeyPair()
	case "encrypt":
		encryptECIES()
	case "decrypt":
		decryptECIES()
	case "sign":
		sign()
	case "verify":
		verify()
	case "encrypt-mnemonic":
		encryptMnemonic(ctx)
	case "decrypt-mnemonic":
		decryptMnemonic(ctx)
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

// derive-key <password> <saltHex> <iterations> <keyLength> <digest>
func deriveKey(ctx context.Context) {
	if len(os.Args) < 7 {
		fatal("usage: testhelper derive-key <password> <saltHex> <iterations> <keyLength> <digest>")
	}
	salt := mustHex(os.Args[3])

	var iterations, keyLength int
	if _, err := fmt.Sscanf(os.Args[4], "%d", &iterations); err != nil {
		fatal("parse iterations: %v", err)
	}
	if _, err := fmt.Sscanf(os.Args[5], "%d", &keyLength); err != nil {
		fatal("parse key length: %v", err)
	}

	key, err := encryption.CreatePbkdf2(nil).Derive(ctx, []byte(os.Args[2]), salt,
		iterations, keyLength, encryption.DigestAlgorithm(os.Args[6]))
	if err != nil {
		fatal("derive: %v", err)
	}
	emit(map[string]string{"derivedKey": hex.EncodeToString(key)})
}

func makeKeyPair() {
	kp, err := encryption.MakeKeyPair()
	if err != nil {
		fatal("make keypair: %v", err)
	}
	emit(map[string]string{
		"privateKey": hex.EncodeToString(kp.PrivateKey),
		"publicKey":  kp.PublicKeyHex,
	})
}

// encrypt <recipientPublicKeyHex> <plaintextHex>
func encryptECIES() {
	if len(os.Args) < 4 {
		fatal("usage: testhelper encrypt <publicKeyHex> <plaintextHex>")
	}
	env, err := encryption.EncryptECIES(mustHex(os.Args[2]), mustHex(os.Args[3]), false)
	if err != nil {
		fatal("encrypt: %v", err)
	}
	emit(env)
}

// decrypt <recipientPrivateKeyHex> with the envelope JSON on stdin
func decryptECIES() {
	if len(os.Args) < 3 {
		fatal("usage: testhelper decrypt <privateKeyHex> < envelope.json")
	}
	var env encryption.CipherEnvelope
	if err := json.NewDecoder(os.Stdin).Decode(&env); err != nil {
		fatal("parse envelope: %v", err)
	}
	plaintext, err := encryption.DecryptECIES(mustHex(os.Args[2]), &env)
	if err != nil {
		fatal("decrypt: %v", err)
	}
	emit(map[string]string{"plaintext": hex.EncodeToString(plaintext)})
}

// sign <privateKeyHex> <messageHex>
func sign() {
	if len(os.Args) < 4 {
		fatal("usage: testhelper sign <privateKeyHex> <messageHex>")
	}
	sig, err := encryption.SignECDSA(mustHex(os.Args[2]), mustHex(os.Args[3]))
	if err != nil {
		fatal("sign: %v", err)
	}
	emit(map[string]string{
		"publicKey": hex.EncodeToString(sig.PublicKey),
		"signature": hex.EncodeToString(sig.Signature),
	})
}

// verify <messageHex> <publicKeyHex> <signatureHex>
func verify() {
	if len(os.Args) < 5 {
		fatal("usage: testhelper verify <messageHex> <publicKeyHex> <signatureHex>")
	}
	ok := encryption.VerifyECDSA(mustHex(os.Args[2]), mustHex(os.Args[3]), mustHex(os.Args[4]))
	emit(map[string]bool{"valid": ok})
}

// encrypt-mnemonic <phrase> <password> [saltHex]
func encryptMnemonic(ctx context.Context) {
	if len(os.Args) < 4 {
		fatal("usage: testhelper encrypt-mnemonic <phrase> <password> [saltHex]")
	}
	var opts []encryption.MnemonicOption
	if len(os.Args) > 4 {
		opts = append(opts, encryption.WithSalt(mustHex(os.Args[4])))
	}
	record, err := encryption.EncryptMnemonic(ctx, os.Args[2], os.Args[3], opts...)
	if err != nil {
		fatal("encrypt mnemonic: %v", err)
	}
	emit(map[string]string{"encryptedMnemonic": hex.EncodeToString(record)})
}

// decrypt-mnemonic <recordHex> <password>
func decryptMnemonic(ctx context.Context) {
	if len(os.Args) < 4 {
		fatal("usage: testhelper decrypt-mnemonic <recordHex> <password>")
	}
	phrase, err := encryption.DecryptMnemonicHex(ctx, os.Args[2], os.Args[3], nil)
	if err != nil {
		fatal("decrypt mnemonic: %v", err)
	}
	emit(map[string]string{"mnemonic": phrase})
}

func mustHex(s string) []byte {
	data, err := hex.DecodeString(s)
	if err != nil {
		fatal("invalid hex %q: %v", s, err)
	}
	return data
}

func emit(v interface{}) {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		fatal("encode output: %v", err)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
