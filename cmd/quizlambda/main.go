// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Quizlambda runs the quiz generation endpoint as an AWS Lambda function
// behind an API Gateway HTTP API (payload format 2.0).
//
// The Gemini API key is read once at cold start from the GEMINI_API_KEY
// environment variable.
package main

import (
	"log"
	"os"

	"go.astrophena.name/quizgen/internal/quiz"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	log.SetFlags(0) // CloudWatch adds timestamps
	h := &gateway{
		handler: quiz.New(quiz.ConfigFromEnv(os.Getenv), nil, log.Printf),
		logf:    log.Printf,
	}
	lambda.Start(h.Handle)
}
