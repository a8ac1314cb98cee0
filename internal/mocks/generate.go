package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ProviderGateway --dir ../usecase --output usecase --outpkg usecasemock --filename provider_gateway_mock.go
