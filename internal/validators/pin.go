package validators

// IsPinValid aceita PINs de 4 a 6 dígitos numéricos. O formato é checado
// antes de consultar o banco para não gastar uma RPC com entrada inválida.
func IsPinValid(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
