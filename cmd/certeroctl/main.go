package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/certero/internal/util/atomicwrite"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("CERTERO_URL", "http://localhost:8080")
		token   = envOr("CERTERO_TOKEN", "")
		out     = envOr("CERTERO_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "certeroctl",
		Short: "CLI para el inventario de certificados de certero",
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del API (env CERTERO_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Bearer token (env CERTERO_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{HTTP: &http.Client{Timeout: timeout}}
	// Los flags se resuelven recién al ejecutar
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL, cl.Token, cl.OutFormat = baseURL, token, out
	}

	// grupo certs
	certsCmd := &cobra.Command{
		Use:   "certs",
		Short: "Operaciones sobre el inventario de certificados",
	}

	var listFilter string
	var listCount, listPage int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar certificados (paginado)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/v1/certificates?count=%d&page=%d", listCount, listPage)
			if listFilter != "" {
				path += "&filter=" + listFilter
			}
			status, body, err := cl.do("GET", path, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("list fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Filtro por nombre")
	listCmd.Flags().IntVar(&listCount, "count", 10, "Tamaño de página")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Página")

	var addName, addFile, addChainFile string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Subir un certificado PEM al inventario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addFile == "" {
				return fmt.Errorf("falta --file con el PEM del certificado")
			}
			pemBody, err := os.ReadFile(addFile)
			if err != nil {
				return err
			}
			chain := ""
			if addChainFile != "" {
				raw, err := os.ReadFile(addChainFile)
				if err != nil {
					return err
				}
				chain = string(raw)
			}
			payload, _ := json.Marshal(map[string]string{
				"name":  addName,
				"body":  string(pemBody),
				"chain": chain,
			})
			status, body, err := cl.do("POST", "/v1/certificates", payload)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("add fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addName, "name", "", "Nombre amigable (default: CN del cert)")
	addCmd.Flags().StringVar(&addFile, "file", "", "Archivo PEM del certificado")
	addCmd.Flags().StringVar(&addChainFile, "chain", "", "Archivo PEM de la cadena (opcional)")

	var parseFile string
	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "Inspeccionar un PEM sin persistirlo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if parseFile == "" {
				return fmt.Errorf("falta --file con el PEM del certificado")
			}
			pemBody, err := os.ReadFile(parseFile)
			if err != nil {
				return err
			}
			payload, _ := json.Marshal(map[string]string{"body": string(pemBody)})
			status, body, err := cl.do("POST", "/v1/certificates/parse", payload)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("parse fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	parseCmd.Flags().StringVar(&parseFile, "file", "", "Archivo PEM del certificado")

	certsCmd.AddCommand(listCmd, addCmd, parseCmd)

	// grupo keys
	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Generación de material privado",
	}

	var genType, genOut string
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generar una clave privada (RSA o ECC)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if genType == "" {
				return fmt.Errorf("falta --type (ver: certeroctl keys types)")
			}
			payload, _ := json.Marshal(map[string]string{"key_type": genType})
			status, body, err := cl.do("POST", "/v1/keys", payload)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("gen fallo: status=%d body=%s", status, string(body))
			}

			var resp struct {
				PrivateKey string `json:"private_key"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}

			if genOut == "" {
				fmt.Print(resp.PrivateKey)
				return nil
			}
			// A disco siempre 0600 y con escritura atómica
			if err := atomicwrite.WriteFile(genOut, []byte(resp.PrivateKey), 0o600); err != nil {
				return err
			}
			fmt.Printf("clave escrita en %s\n", genOut)
			return nil
		},
	}
	genCmd.Flags().StringVar(&genType, "type", "", "Tipo de clave (ej: RSA2048, ECCPRIME256V1)")
	genCmd.Flags().StringVar(&genOut, "out", "", "Archivo destino (stdout si se omite)")

	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "Listar el catálogo de tipos de clave",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/v1/keys/types", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("types fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	keysCmd.AddCommand(genCmd, typesCmd)

	root.AddCommand(certsCmd, keysCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
