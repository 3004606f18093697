package receipt

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pfandscan/internal/extract"
)

// multipartUpload builds a multipart request body with a single file field
func multipartUpload(field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(data)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())

	return body, writer.FormDataContentType()
}

var _ = Describe("Server", func() {
	var (
		engine   *mockEngine
		server   *Server
		auth     BasicAuth
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		engine = &mockEngine{
			doc: documentFromLines(
				"STORE XYZ",
				"Bread",
				"Pepsi bottle",
				"TOTAL 2.49€",
			),
		}
		auth = BasicAuth{}
		recorder = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		service := NewService(engine, extract.New(extract.DefaultRules()))
		server = NewServer(service, auth)
	})

	Describe("POST /api/scan", func() {
		When("uploading a valid receipt", func() {
			var response extract.Result

			JustBeforeEach(func() {
				body, contentType := multipartUpload("file", "receipt.jpg", "image/jpeg", []byte("image-bytes"))
				req := httptest.NewRequest("POST", "/api/scan", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(recorder, req)

				Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			})

			It("returns 200", func() {
				Expect(recorder.Code).To(Equal(http.StatusOK))
			})

			It("returns JSON", func() {
				Expect(recorder.Header().Get("Content-Type")).To(Equal("application/json"))
			})

			It("returns the normalized items", func() {
				Expect(response.Items).To(Equal([]string{"Bread", "Pepsi bottle"}))
			})

			It("returns the deposit estimate", func() {
				Expect(response.Deposit).To(Equal(0.25))
			})

			It("hands the file content type to the engine", func() {
				Expect(engine.lastType).To(Equal("image/jpeg"))
			})
		})

		When("no file is provided", func() {
			JustBeforeEach(func() {
				body := &bytes.Buffer{}
				writer := multipart.NewWriter(body)
				Expect(writer.Close()).To(Succeed())

				req := httptest.NewRequest("POST", "/api/scan", body)
				req.Header.Set("Content-Type", writer.FormDataContentType())
				server.ServeHTTP(recorder, req)
			})

			It("returns 400", func() {
				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})

			It("returns a JSON error message", func() {
				var response map[string]string
				Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
				Expect(response["error"]).NotTo(BeEmpty())
			})
		})

		When("the body is not multipart", func() {
			JustBeforeEach(func() {
				req := httptest.NewRequest("POST", "/api/scan", bytes.NewBufferString("plain"))
				req.Header.Set("Content-Type", "text/plain")
				server.ServeHTTP(recorder, req)
			})

			It("returns 400", func() {
				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})

		When("recognition fails", func() {
			BeforeEach(func() {
				engine.recognizeErr = errors.New("model unavailable")
			})

			JustBeforeEach(func() {
				body, contentType := multipartUpload("file", "receipt.jpg", "image/jpeg", []byte("image-bytes"))
				req := httptest.NewRequest("POST", "/api/scan", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(recorder, req)
			})

			It("returns 500", func() {
				Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			})

			It("does not leak the engine error", func() {
				var response map[string]string
				Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
				Expect(response["error"]).To(Equal("Error processing receipt"))
				Expect(recorder.Body.String()).NotTo(ContainSubstring("model unavailable"))
			})
		})
	})

	Describe("GET /", func() {
		JustBeforeEach(func() {
			req := httptest.NewRequest("GET", "/", nil)
			server.ServeHTTP(recorder, req)
		})

		It("serves the HTML interface", func() {
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("text/html; charset=utf-8"))
			Expect(recorder.Body.String()).To(ContainSubstring("Pfand Scanner"))
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "user", Password: "secret"}
		})

		When("no credentials are supplied", func() {
			JustBeforeEach(func() {
				req := httptest.NewRequest("GET", "/", nil)
				server.ServeHTTP(recorder, req)
			})

			It("returns 401 with a challenge", func() {
				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
				Expect(recorder.Header().Get("WWW-Authenticate")).To(ContainSubstring("Basic"))
			})
		})

		When("wrong credentials are supplied", func() {
			JustBeforeEach(func() {
				req := httptest.NewRequest("GET", "/", nil)
				req.SetBasicAuth("user", "wrong")
				server.ServeHTTP(recorder, req)
			})

			It("returns 401", func() {
				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
			})
		})

		When("correct credentials are supplied", func() {
			JustBeforeEach(func() {
				req := httptest.NewRequest("GET", "/", nil)
				req.SetBasicAuth("user", "secret")
				server.ServeHTTP(recorder, req)
			})

			It("returns 200", func() {
				Expect(recorder.Code).To(Equal(http.StatusOK))
			})
		})
	})
})
