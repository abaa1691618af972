package services

// HTML bodies are filled with fmt.Sprintf; keep the verb order in sync with
// the callers.

const expiredRentalEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; background: #f9fafb; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 24px;">
    <h2 style="margin-top: 0;">%s</h2>
    <p>Dear %s,</p>
    <p>The rental <strong>%s</strong> for unit <strong>%s</strong> has reached its end date.</p>
    <table style="width: 100%%; border-collapse: collapse;">
      <tr><td>Start date</td><td>%s</td></tr>
      <tr><td>End date</td><td>%s</td></tr>
      <tr><td>Total amount</td><td>%s</td></tr>
      <tr><td>Payment status</td><td>%s</td></tr>
      <tr><td>Date paid</td><td>%s</td></tr>
    </table>
    <p style="font-size: 12px; color: #6b7280;">Reference %s / business %s</p>
    <p style="font-size: 12px; color: #6b7280;">&copy; %d %s</p>
  </div>
</body>
</html>`

const verificationEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; background: #f9fafb; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 24px; text-align: center;">
    <h2 style="margin-top: 0;">%s</h2>
    <p>Use the following code to verify your email. It expires in %d minutes.</p>
    <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</p>
    <p style="font-size: 12px; color: #6b7280;">&copy; %d %s</p>
  </div>
</body>
</html>`
