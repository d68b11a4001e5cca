package fetch_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/aquasecurity/polaris-lens/pkg/fetch"
	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/ghttp"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

const auditJSON = `{
  "PolarisOutputVersion": "1.0",
  "AuditTime": "2024-05-01T10:00:00Z",
  "SourceType": "Cluster",
  "SourceName": "in-cluster",
  "DisplayName": "kind-kind",
  "ClusterInfo": {"Version": "1.29", "Nodes": 1, "Pods": 2, "Namespaces": 1, "Controllers": 1},
  "Results": [
    {
      "Name": "nginx",
      "Namespace": "web",
      "Kind": "Deployment",
      "CreatedTime": "2024-04-30T08:00:00Z",
      "Results": {},
      "PodResult": {
        "Name": "",
        "Results": {
          "hostIPCSet": {"ID": "hostIPCSet", "Message": "Host IPC is not configured", "Details": null, "Success": true, "Severity": "danger", "Category": "Security"}
        },
        "ContainerResults": []
      }
    }
  ]
}`

const proxyPath = "/api/v1/namespaces/polaris/services/polaris-dashboard:80/proxy/"

var _ = Describe("The audit data fetcher", func() {

	var server *Server
	var fetcher *fetch.Fetcher

	BeforeEach(func() {
		server = NewServer()
		clientset, err := kubernetes.NewForConfig(&rest.Config{Host: server.URL()})
		Expect(err).ToNot(HaveOccurred())
		fetcher = fetch.NewFetcher(fetch.NewKubeProxyRequester(clientset.CoreV1().RESTClient()))
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("fetching from an absolute URL", func() {
		Context("when the request succeeds", func() {
			BeforeEach(func() {
				server.AppendHandlers(
					CombineHandlers(
						VerifyRequest("GET", "/results.json"),
						VerifyHeader(http.Header{
							"User-Agent": []string{"PolarisLens"},
						}),
						RespondWith(http.StatusOK, auditJSON),
					),
				)
			})

			It("should decode the audit document", func() {
				data, err := fetcher.Fetch(context.TODO(), server.URL())
				Expect(err).ToNot(HaveOccurred())
				Expect(data.DisplayName).To(Equal("kind-kind"))
				Expect(data.Results).To(HaveLen(1))
				Expect(polaris.CountResults(*data)).To(Equal(polaris.ResultCounts{Total: 1, Pass: 1}))
				Expect(server.ReceivedRequests()).To(HaveLen(1))
			})

			It("should not double the trailing slash", func() {
				_, err := fetcher.Fetch(context.TODO(), server.URL()+"/")
				Expect(err).ToNot(HaveOccurred())
			})
		})

		Context("when the server responds with an error status", func() {
			BeforeEach(func() {
				server.AppendHandlers(RespondWith(http.StatusNotFound, "page not found"))
			})

			It("should return a status error", func() {
				_, err := fetcher.Fetch(context.TODO(), server.URL())
				Expect(err).To(MatchError("HTTP 404: Not Found"))
				Expect(fetch.StatusCode(err)).To(Equal(http.StatusNotFound))
			})
		})

		Context("when the body is not JSON", func() {
			BeforeEach(func() {
				server.AppendHandlers(RespondWith(http.StatusOK, "<html></html>"))
			})

			It("should return a decoding error", func() {
				_, err := fetcher.Fetch(context.TODO(), server.URL())
				Expect(err).To(HaveOccurred())
				Expect(fetch.StatusCode(err)).To(BeZero())
			})
		})
	})

	Describe("fetching through the API server proxy", func() {
		Context("when the request succeeds", func() {
			BeforeEach(func() {
				server.AppendHandlers(
					CombineHandlers(
						VerifyRequest("GET", proxyPath+"results.json"),
						RespondWith(http.StatusOK, auditJSON),
					),
				)
			})

			It("should decode the audit document", func() {
				data, err := fetcher.Fetch(context.TODO(), proxyPath)
				Expect(err).ToNot(HaveOccurred())
				Expect(data.PolarisOutputVersion).To(Equal("1.0"))
			})
		})

		Context("when the proxy is forbidden", func() {
			BeforeEach(func() {
				server.AppendHandlers(RespondWith(http.StatusForbidden, "forbidden"))
			})

			It("should carry the status code", func() {
				_, err := fetcher.Fetch(context.TODO(), proxyPath)
				Expect(err).To(HaveOccurred())
				Expect(fetch.StatusCode(err)).To(Equal(http.StatusForbidden))
			})
		})

		Context("when no proxy is configured", func() {
			It("should fail", func() {
				_, err := fetch.NewFetcher(nil).Fetch(context.TODO(), proxyPath)
				Expect(err).To(MatchError(fetch.ErrNoProxy))
			})
		})
	})

	Describe("testing the connection", func() {
		It("should report version and audit time", func() {
			server.AppendHandlers(RespondWith(http.StatusOK, auditJSON))
			result := fetch.TestConnection(context.TODO(), fetcher, server.URL())
			Expect(result.Success).To(BeTrue())
			Expect(result.Message).To(Equal("Connected successfully! Version: 1.0, Last audit: Wed, 01 May 2024 10:00:00 UTC"))
			Expect(result.Warning).To(BeEmpty())
		})

		It("should report the raw error", func() {
			server.AppendHandlers(RespondWith(http.StatusForbidden, ""))
			result := fetch.TestConnection(context.TODO(), fetcher, server.URL())
			Expect(result.Success).To(BeFalse())
			Expect(result.Message).To(Equal("Connection failed: HTTP 403: Forbidden"))
		})
	})
})

var _ = Describe("Classify", func() {

	DescribeTable("translating fetch failures",
		func(dashboardURL string, err error, expected string) {
			classified := fetch.Classify(dashboardURL, err)
			Expect(classified.Error()).To(Equal(expected))
			Expect(errors.Unwrap(classified)).To(Equal(err))
		},
		Entry("proxy forbidden", proxyPath, &fetch.StatusError{Status: 403},
			"Access denied (403). Check that your RBAC permissions allow proxying to the Polaris service."),
		Entry("proxy not found", proxyPath, &fetch.StatusError{Status: 404},
			"Polaris dashboard not reachable. Ensure Polaris is installed in the configured namespace."),
		Entry("proxy unavailable", proxyPath, &fetch.StatusError{Status: 503},
			"Polaris dashboard not reachable. Ensure Polaris is installed in the configured namespace."),
		Entry("proxy network error", proxyPath, errors.New("dial tcp: connection refused"),
			"Failed to fetch Polaris data: dial tcp: connection refused"),
		Entry("full URL forbidden", "https://polaris.example.com", &fetch.StatusError{Status: 403},
			"Access denied (403). Check authentication and CORS configuration."),
		Entry("full URL not found", "https://polaris.example.com", &fetch.StatusError{Status: 404},
			"Polaris dashboard not found (404). Verify the URL is correct."),
		Entry("full URL other", "https://polaris.example.com/", &fetch.StatusError{Status: 500, Text: "Internal Server Error"},
			"Failed to fetch from https://polaris.example.com/results.json: HTTP 500: Internal Server Error"),
	)

	It("should build results URL", func() {
		Expect(fetch.ResultsURL("/proxy/")).To(Equal("/proxy/results.json"))
		Expect(fetch.ResultsURL("/proxy")).To(Equal("/proxy/results.json"))
		Expect(fetch.IsFullURL("http://polaris")).To(BeTrue())
		Expect(fetch.IsFullURL("/api/v1")).To(BeFalse())
	})
})
