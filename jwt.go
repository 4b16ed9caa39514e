package snowtype

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// keyPairToken builds the RS256 key-pair JWT the SQL API authenticates
// with. The issuer carries the SHA-256 fingerprint of the public key;
// account and user are uppercased the way Snowflake canonicalizes them.
func keyPairToken(publicKeyPEM, privateKeyPEM []byte, account, user string, now time.Time) (string, error) {
	priv, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}
	fp, err := publicKeyFingerprint(publicKeyPEM)
	if err != nil {
		return "", fmt.Errorf("public key: %w", err)
	}

	qualified := strings.ToUpper(account) + "." + strings.ToUpper(user)
	claims := jwt.MapClaims{
		"iss": qualified + ".SHA256:" + fp,
		"sub": qualified,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
}

func parsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("not an RSA key")
		}
		return rsaKey, nil
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}

// publicKeyFingerprint computes the base64 SHA-256 digest of the DER
// encoded public key, the form Snowflake expects in the JWT issuer.
func publicKeyFingerprint(pemBytes []byte) (string, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return "", fmt.Errorf("no PEM block found")
	}
	if _, err := x509.ParsePKIXPublicKey(block.Bytes); err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	sum := sha256.Sum256(block.Bytes)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
