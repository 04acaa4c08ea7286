// Package pkpass builds signed Apple Wallet pass archives (.pkpass).
//
// A pass archive is a zip file containing:
//   - pass.json: the pass descriptor (see Pass)
//   - the template images referenced by the pass (icon.png, icon@2x.png, logo.png ...)
//   - manifest.json: a JSON object mapping every archive path to the lowercase hex SHA-1 of its bytes
//   - signature: a detached PKCS#7 (CMS) signature over manifest.json made with the pass type
//     identity certificate, with the Apple WWDR intermediate included in the signer chain
//
// The signing identity is read from a password protected PKCS#12 file and the trust chain from a
// PEM (or DER) certificate file. Both are read on every call: the package holds no key material
// between requests.
//
// Use ArchiveSigner.CreateSignedArchive to produce an archive and VerifyArchive to check one.
// The devcerts functions generate a self-signed signing identity and template images for
// local development and tests. Passes signed with development certificates will not install
// on a device.
package pkpass
