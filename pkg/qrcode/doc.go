// Package qrcode renders PNG QR codes at medium error correction, either as
// raw bytes or as a data URI ready for an <img> src.
//
//	png, err := qrcode.Generate("https://deck.example.com", 256)
//	uri, err := qrcode.GenerateBase64Image("https://deck.example.com", 0) // default size
package qrcode
