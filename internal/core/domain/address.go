package domain

// Address is what a postal-code lookup yields for the cliente form.
type Address struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"localidade"`
	UF          string `json:"uf"`
	Complemento string `json:"complemento"`
}
